package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/discovery"
	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/http/response"
	"github.com/edushare/edushare-backend/internal/platform/apierr"
	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/requestdata"
)

type stubSettingsService struct {
	persisted map[string]discovery.FilterSpec
}

func (s *stubSettingsService) Persist(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType string, f discovery.FilterSpec) error {
	if entityType != domain.EntityTypeResource && entityType != domain.EntityTypeLearningModule {
		return apierr.Validation("unknown_entity_type", fmt.Errorf("unknown entity type %q", entityType))
	}
	if s.persisted == nil {
		s.persisted = map[string]discovery.FilterSpec{}
	}
	s.persisted[entityType] = f
	return nil
}

func (s *stubSettingsService) Fetch(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType string) (discovery.FilterSpec, error) {
	if entityType != domain.EntityTypeResource && entityType != domain.EntityTypeLearningModule {
		return discovery.FilterSpec{}, apierr.Validation("unknown_entity_type", fmt.Errorf("unknown entity type %q", entityType))
	}
	return s.persisted[entityType], nil
}

func settingsTestRouter(t *testing.T, svc *stubSettingsService, authed bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	h := NewUserSettingsHandler(log, svc)

	r := gin.New()
	if authed {
		r.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
				UserID: uuid.New(),
			}))
		})
	}
	r.GET("/api/me/filters/:entityType", h.GetFilters)
	r.PUT("/api/me/filters/:entityType", h.PutFilters)
	return r
}

func TestUserSettingsHandlerRoundTrip(t *testing.T) {
	svc := &stubSettingsService{}
	r := settingsTestRouter(t, svc, true)

	subjectID := uuid.New()
	body := fmt.Sprintf(`{"subject_ids":[%q],"exact_match":true}`, subjectID)
	req := httptest.NewRequest(http.MethodPut, "/api/me/filters/resource", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected put status: got=%d body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/me/filters/resource", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected get status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		Filters discovery.FilterSpec `json:"filters"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(out.Filters.SubjectIDs) != 1 || out.Filters.SubjectIDs[0] != subjectID {
		t.Fatalf("subject facet did not round-trip: %+v", out.Filters)
	}
}

func TestUserSettingsHandlerRejectsUnknownEntityType(t *testing.T) {
	r := settingsTestRouter(t, &stubSettingsService{}, true)

	req := httptest.NewRequest(http.MethodGet, "/api/me/filters/bogus", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	var env response.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Error.Code != "unknown_entity_type" {
		t.Fatalf("unexpected error code: got=%q", env.Error.Code)
	}
}

func TestUserSettingsHandlerRequiresAuth(t *testing.T) {
	r := settingsTestRouter(t, &stubSettingsService{}, false)

	req := httptest.NewRequest(http.MethodGet, "/api/me/filters/resource", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusUnauthorized)
	}
}
