package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrewdionne/polishpages/internal/http/response"
	"github.com/andrewdionne/polishpages/internal/pipeline"
	"github.com/andrewdionne/polishpages/internal/platform/logger"
	"github.com/andrewdionne/polishpages/internal/set"
)

type SetHandler struct {
	log   *logger.Logger
	orch  *pipeline.Orchestrator
	store *set.Store
}

func NewSetHandler(log *logger.Logger, orch *pipeline.Orchestrator, store *set.Store) *SetHandler {
	return &SetHandler{
		log:   log.With("handler", "SetHandler"),
		orch:  orch,
		store: store,
	}
}

func (h *SetHandler) List(c *gin.Context) {
	names, err := h.store.List()
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	sets := make([]*set.Metadata, 0, len(names))
	for _, name := range names {
		md, err := h.store.Metadata(name)
		if err != nil {
			h.log.Warn("Skipping unreadable set in listing", "set", name, "error", err)
			continue
		}
		sets = append(sets, md)
	}
	response.RespondOK(c, gin.H{"sets": sets})
}

func (h *SetHandler) Create(c *gin.Context) {
	var req pipeline.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	res, err := h.orch.CreateSet(c.Request.Context(), req)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *SetHandler) Regenerate(c *gin.Context) {
	res, err := h.orch.Regenerate(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *SetHandler) Delete(c *gin.Context) {
	existed, err := h.orch.DeleteSet(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": existed})
}

func (h *SetHandler) RebuildCatalog(c *gin.Context) {
	if err := h.orch.RebuildCatalog(); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}
