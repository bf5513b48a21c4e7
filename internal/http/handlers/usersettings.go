package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edushare/edushare-backend/internal/discovery"
	"github.com/edushare/edushare-backend/internal/http/response"
	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/services"
)

type UserSettingsHandler struct {
	log         *logger.Logger
	settingsSvc services.UserSettingsService
}

func NewUserSettingsHandler(log *logger.Logger, settingsSvc services.UserSettingsService) *UserSettingsHandler {
	return &UserSettingsHandler{
		log:         log.With("handler", "UserSettingsHandler"),
		settingsSvc: settingsSvc,
	}
}

func (h *UserSettingsHandler) GetFilters(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	entityType := c.Param("entityType")
	f, err := h.settingsSvc.Fetch(c.Request.Context(), nil, rd.UserID, entityType)
	if err != nil {
		respondFailure(c, h.log, "GetFilters", err)
		return
	}
	response.RespondOK(c, gin.H{"filters": f})
}

func (h *UserSettingsHandler) PutFilters(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	entityType := c.Param("entityType")
	var f discovery.FilterSpec
	if err := c.ShouldBindJSON(&f); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.settingsSvc.Persist(c.Request.Context(), nil, rd.UserID, entityType, f); err != nil {
		respondFailure(c, h.log, "PutFilters", err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}
