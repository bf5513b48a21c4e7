package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edushare/edushare-backend/internal/http/response"
	"github.com/edushare/edushare-backend/internal/platform/apierr"
	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/requestdata"
)

// viewer returns the authenticated user's request data, responding 401
// itself when the auth middleware did not attach one.
func viewer(c *gin.Context) (*requestdata.RequestData, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return nil, false
	}
	return rd, true
}

func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}

// respondFailure maps a service error onto the HTTP envelope. Client
// faults are logged at debug; everything else is a server fault.
func respondFailure(c *gin.Context, log *logger.Logger, op string, err error) {
	status, code := apierr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err)
	} else {
		log.Debug(op+" rejected", "error", err, "code", code)
	}
	response.RespondError(c, status, code, err)
}
