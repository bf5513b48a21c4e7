package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edushare/edushare-backend/internal/discovery"
	"github.com/edushare/edushare-backend/internal/http/response"
	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/services"
)

type LearningModuleHandler struct {
	log          *logger.Logger
	discoverySvc services.ModuleDiscoveryService
	moduleSvc    services.LearningModuleService
	voteSvc      services.VoteService
	savedSvc     services.SavedListService
}

func NewLearningModuleHandler(
	log *logger.Logger,
	discoverySvc services.ModuleDiscoveryService,
	moduleSvc services.LearningModuleService,
	voteSvc services.VoteService,
	savedSvc services.SavedListService,
) *LearningModuleHandler {
	return &LearningModuleHandler{
		log:          log.With("handler", "LearningModuleHandler"),
		discoverySvc: discoverySvc,
		moduleSvc:    moduleSvc,
		voteSvc:      voteSvc,
		savedSvc:     savedSvc,
	}
}

func (h *LearningModuleHandler) Search(c *gin.Context) {
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

func (h *LearningModuleHandler) Get(c *gin.Context) {
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

func (h *LearningModuleHandler) Create(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	var in services.CreateModuleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.moduleSvc.Create(c.Request.Context(), nil, rd.UserID, in)
	if err != nil {
		respondFailure(c, h.log, "Create", err)
		return
	}
	response.RespondCreated(c, gin.H{"learning_module": created})
}

func (h *LearningModuleHandler) Update(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in services.UpdateModuleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := h.moduleSvc.Update(c.Request.Context(), nil, rd.UserID, id, in)
	if err != nil {
		respondFailure(c, h.log, "Update", err)
		return
	}
	response.RespondOK(c, gin.H{"learning_module": updated})
}

func (h *LearningModuleHandler) Delete(c *gin.Context) {
	if _, ok := viewer(c); !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.moduleSvc.Delete(c.Request.Context(), nil, id); err != nil {
		respondFailure(c, h.log, "Delete", err)
		return
	}
	response.RespondNoContent(c)
}

func (h *LearningModuleHandler) ValidateTitle(c *gin.Context) {
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

func (h *LearningModuleHandler) Upvote(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.voteSvc.UpvoteModule(c.Request.Context(), nil, rd.UserID, id); err != nil {
		respondFailure(c, h.log, "Upvote", err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}

func (h *LearningModuleHandler) Downvote(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.voteSvc.DownvoteModule(c.Request.Context(), nil, rd.UserID, id); err != nil {
		respondFailure(c, h.log, "Downvote", err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}

func (h *LearningModuleHandler) Save(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.savedSvc.SaveModule(c.Request.Context(), nil, rd.UserID, id); err != nil {
		respondFailure(c, h.log, "Save", err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}

func (h *LearningModuleHandler) Unsave(c *gin.Context) {
	rd, ok := viewer(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.savedSvc.UnsaveModule(c.Request.Context(), nil, rd.UserID, id); err != nil {
		respondFailure(c, h.log, "Unsave", err)
		return
	}
	response.RespondNoContent(c)
}
