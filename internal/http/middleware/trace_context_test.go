package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/edushare/edushare-backend/internal/platform/ctxutil"
)

func TestAttachTraceContextEchoesAndAttaches(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var captured *ctxutil.TraceData
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/ping", func(c *gin.Context) {
		captured = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerTraceID, "trace-abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if captured == nil {
		t.Fatalf("trace data not attached to the request context")
	}
	if captured.TraceID != "trace-abc" {
		t.Fatalf("caller-supplied trace id must win: got=%q", captured.TraceID)
	}
	if captured.RequestID == "" {
		t.Fatalf("request id must be generated when absent")
	}
	if got := rec.Header().Get(headerTraceID); got != "trace-abc" {
		t.Fatalf("trace id not echoed: got=%q", got)
	}
	if got := rec.Header().Get(headerRequestID); got != captured.RequestID {
		t.Fatalf("request id header mismatch: got=%q want=%q", got, captured.RequestID)
	}

	fields := captured.Fields()
	if len(fields) != 4 {
		t.Fatalf("expected trace and request id log fields, got %v", fields)
	}
}

func TestTraceDataFieldsNilSafe(t *testing.T) {
	var td *ctxutil.TraceData
	if got := td.Fields(); got != nil {
		t.Fatalf("nil trace data must yield no fields, got %v", got)
	}
}
