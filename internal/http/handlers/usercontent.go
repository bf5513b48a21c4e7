package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/http/response"
	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/services"
)

// UserContentHandler serves the "your content" overlay: entities the
// viewer created or saved, searchable by title.
type UserContentHandler struct {
	log          *logger.Logger
	resourceDisc services.ResourceDiscoveryService
	moduleDisc   services.ModuleDiscoveryService
}

func NewUserContentHandler(
	log *logger.Logger,
	resourceDisc services.ResourceDiscoveryService,
	moduleDisc services.ModuleDiscoveryService,
) *UserContentHandler {
	return &UserContentHandler{
		log:          log.With("handler", "UserContentHandler"),
		resourceDisc: resourceDisc,
		moduleDisc:   moduleDisc,
	}
}

type userContentSearchRequest struct {
	EntityType string `json:"entity_type"`
	IsSaved    bool   `json:"is_saved"`
	SearchText string `json:"search_text"`
	Page       int    `json:"page"`
}

func (h *UserContentHandler) Search(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	var req userContentSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	switch req.EntityType {
	case domain.EntityTypeResource:
		page, err := h.resourceDisc.SearchUserContent(c.Request.Context(), nil, rd.UserID, req.IsSaved, req.SearchText, req.Page)
		if err != nil {
			respondFailure(c, h.log, "Search", err)
			return
		}
		response.RespondOK(c, page)
	case domain.EntityTypeLearningModule:
		page, err := h.moduleDisc.SearchUserContent(c.Request.Context(), nil, rd.UserID, req.IsSaved, req.SearchText, req.Page)
		if err != nil {
			respondFailure(c, h.log, "Search", err)
			return
		}
		response.RespondOK(c, page)
	default:
		response.RespondError(c, http.StatusBadRequest, "unknown_entity_type",
			fmt.Errorf("unknown entity type %q", req.EntityType))
	}
}
