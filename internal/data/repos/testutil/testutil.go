package testutil

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	appdb "github.com/edushare/edushare-backend/internal/data/db"
	types "github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}

		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			dbErr = err
			return
		}

		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
			dbErr = err
			return
		}

		if err := appdb.AutoMigrateAll(db); err != nil {
			dbErr = err
			return
		}
	})

	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

// Seed helpers insert minimal valid rows for the discovery fixtures. Each
// uses a unique suffix so tests sharing a database never collide on the
// unique name and email indexes.

func SeedUser(tb testing.TB, tx *gorm.DB, displayName string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		Email:       fmt.Sprintf("%s@example.com", uuid.NewString()),
		DisplayName: displayName,
	}
	if err := tx.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedSubject(tb testing.TB, tx *gorm.DB, name string) *types.Subject {
	tb.Helper()
	s := &types.Subject{ID: uuid.New(), Name: fmt.Sprintf("%s-%s", name, uuid.NewString()[:8])}
	if err := tx.Create(s).Error; err != nil {
		tb.Fatalf("seed subject: %v", err)
	}
	return s
}

func SeedGrade(tb testing.TB, tx *gorm.DB, name string) *types.Grade {
	tb.Helper()
	g := &types.Grade{ID: uuid.New(), Name: fmt.Sprintf("%s-%s", name, uuid.NewString()[:8])}
	if err := tx.Create(g).Error; err != nil {
		tb.Fatalf("seed grade: %v", err)
	}
	return g
}

func SeedTag(tb testing.TB, tx *gorm.DB, name string) *types.Tag {
	tb.Helper()
	tag := &types.Tag{ID: uuid.New(), Name: fmt.Sprintf("%s-%s", name, uuid.NewString()[:8])}
	if err := tx.Create(tag).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return tag
}

func SeedResource(tb testing.TB, tx *gorm.DB, title string, subjectID, gradeID, createdByID uuid.UUID, createdAt time.Time) *types.Resource {
	tb.Helper()
	r := &types.Resource{
		ID:          uuid.New(),
		Title:       title,
		SubjectID:   subjectID,
		GradeID:     gradeID,
		CreatedByID: createdByID,
		CreatedAt:   createdAt,
	}
	if err := tx.Create(r).Error; err != nil {
		tb.Fatalf("seed resource: %v", err)
	}
	return r
}

func SeedModule(tb testing.TB, tx *gorm.DB, title string, subjectID, gradeID, createdByID uuid.UUID, createdAt time.Time) *types.LearningModule {
	tb.Helper()
	m := &types.LearningModule{
		ID:          uuid.New(),
		Title:       title,
		SubjectID:   subjectID,
		GradeID:     gradeID,
		CreatedByID: createdByID,
		CreatedAt:   createdAt,
	}
	if err := tx.Create(m).Error; err != nil {
		tb.Fatalf("seed module: %v", err)
	}
	return m
}
