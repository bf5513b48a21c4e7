package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edushare/edushare-backend/internal/discovery"
	"github.com/edushare/edushare-backend/internal/http/response"
	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/services"
)

type ResourceHandler struct {
	log          *logger.Logger
	discoverySvc services.ResourceDiscoveryService
	resourceSvc  services.ResourceService
	voteSvc      services.VoteService
	savedSvc     services.SavedListService
}

func NewResourceHandler(
	log *logger.Logger,
	discoverySvc services.ResourceDiscoveryService,
	resourceSvc services.ResourceService,
	voteSvc services.VoteService,
	savedSvc services.SavedListService,
) *ResourceHandler {
	return &ResourceHandler{
		log:          log.With("handler", "ResourceHandler"),
		discoverySvc: discoverySvc,
		resourceSvc:  resourceSvc,
		voteSvc:      voteSvc,
		savedSvc:     savedSvc,
	}
}

func (h *ResourceHandler) Search(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	var f discovery.FilterSpec
	if err := c.ShouldBindJSON(&f); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	page, err := h.discoverySvc.Search(c.Request.Context(), nil, rd.UserID, f)
	if err != nil {
		respondFailure(c, h.log, "Search", err)
		return
	}
	response.RespondOK(c, page)
}

func (h *ResourceHandler) Get(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	view, err := h.discoverySvc.Get(c.Request.Context(), nil, rd.UserID, id)
	if err != nil {
		respondFailure(c, h.log, "Get", err)
		return
	}
	response.RespondOK(c, view)
}

func (h *ResourceHandler) Create(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	var in services.CreateResourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.resourceSvc.Create(c.Request.Context(), nil, rd.UserID, in)
	if err != nil {
		respondFailure(c, h.log, "Create", err)
		return
	}
	response.RespondCreated(c, gin.H{"resource": created})
}

func (h *ResourceHandler) Update(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in services.UpdateResourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := h.resourceSvc.Update(c.Request.Context(), nil, rd.UserID, id, in)
	if err != nil {
		respondFailure(c, h.log, "Update", err)
		return
	}
	response.RespondOK(c, gin.H{"resource": updated})
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	if _, ok := viewer(c); !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.resourceSvc.Delete(c.Request.Context(), nil, id); err != nil {
		respondFailure(c, h.log, "Delete", err)
		return
	}
	response.RespondNoContent(c)
}

type validateTitleRequest struct {
	Title     string    `json:"title"`
	ExcludeID uuid.UUID `json:"exclude_id"`
}

func (h *ResourceHandler) ValidateTitle(c *gin.Context) {
	if _, ok := viewer(c); !ok {
		return
	}
	var req validateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	available, err := h.discoverySvc.ValidateTitle(c.Request.Context(), nil, req.Title, req.ExcludeID)
	if err != nil {
		respondFailure(c, h.log, "ValidateTitle", err)
		return
	}
	response.RespondOK(c, gin.H{"available": available})
}

func (h *ResourceHandler) Upvote(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.voteSvc.UpvoteResource(c.Request.Context(), nil, rd.UserID, id); err != nil {
		respondFailure(c, h.log, "Upvote", err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}

func (h *ResourceHandler) Downvote(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.voteSvc.DownvoteResource(c.Request.Context(), nil, rd.UserID, id); err != nil {
		respondFailure(c, h.log, "Downvote", err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}

func (h *ResourceHandler) Save(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.savedSvc.SaveResource(c.Request.Context(), nil, rd.UserID, id); err != nil {
		respondFailure(c, h.log, "Save", err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}

func (h *ResourceHandler) Unsave(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.savedSvc.UnsaveResource(c.Request.Context(), nil, rd.UserID, id); err != nil {
		respondFailure(c, h.log, "Unsave", err)
		return
	}
	response.RespondNoContent(c)
}
