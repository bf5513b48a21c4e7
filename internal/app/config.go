package app

import (
	"strings"
	"time"

	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/utils"
)

type Config struct {
	Port         string
	JWTSecretKey string
	CORSOrigins  []string

	RedisAddr    string
	NameCacheTTL time.Duration
	NameBatchMax int

	ServiceName string
	Environment string
	Version     string
}

func LoadConfig(log *logger.Logger) Config {
	corsOrigins := []string{}
	if raw := utils.GetEnv("CORS_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}
	nameCacheTTLSeconds := utils.GetEnvAsInt("NAME_CACHE_TTL", 900, log)
	return Config{
		Port:         utils.GetEnv("PORT", "8080", log),
		JWTSecretKey: utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		CORSOrigins:  corsOrigins,
		RedisAddr:    utils.GetEnv("REDIS_ADDR", "", log),
		NameCacheTTL: time.Duration(nameCacheTTLSeconds) * time.Second,
		NameBatchMax: utils.GetEnvAsInt("NAME_BATCH_MAX", 25, log),
		ServiceName:  utils.GetEnv("SERVICE_NAME", "edushare", log),
		Environment:  utils.GetEnv("ENVIRONMENT", "development", log),
		Version:      utils.GetEnv("SERVICE_VERSION", "dev", log),
	}
}
