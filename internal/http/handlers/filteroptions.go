package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edushare/edushare-backend/internal/http/response"
	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/services"
)

type FilterOptionsHandler struct {
	log        *logger.Logger
	optionsSvc services.FilterOptionsService
}

func NewFilterOptionsHandler(log *logger.Logger, optionsSvc services.FilterOptionsService) *FilterOptionsHandler {
	return &FilterOptionsHandler{
		log:        log.With("handler", "FilterOptionsHandler"),
		optionsSvc: optionsSvc,
	}
}

func (h *FilterOptionsHandler) Options(c *gin.Context) {
	if _, ok := viewer(c); !ok {
		return
	}
	opts, err := h.optionsSvc.Options(c.Request.Context(), nil)
	if err != nil {
		respondFailure(c, h.log, "Options", err)
		return
	}
	response.RespondOK(c, opts)
}
