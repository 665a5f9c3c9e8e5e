package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dev-genie/dev-genie-backend/internal/auth"
	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/projects/domain"
)

func (h *Handler) generate(c *gin.Context) {
	var req domain.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.projects.Generate(c.Request.Context(), auth.UserDBID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":       true,
		"projects": res.Projects,
		"sources":  res.Sources,
		"fallback": res.Fallback,
	})
}

func (h *Handler) list(c *gin.Context) {
	f := domain.ListFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}
	items, err := h.projects.List(c.Request.Context(), auth.UserDBID(c), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	p, err := h.projects.Get(c.Request.Context(), auth.UserDBID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) remove(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := h.projects.Delete(c.Request.Context(), auth.UserDBID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) getDetails(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req detailsReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	selection, err := llm.ParseProviders(req.Providers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	d, cached, err := h.details.GetOrCreate(c.Request.Context(), auth.UserDBID(c), id, selection)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "details": d, "cached": cached})
}

// paper serves the research paper draft as a text download.
func (h *Handler) paper(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	p, err := h.details.Paper(c.Request.Context(), auth.UserDBID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+p.FileName+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(p.Body))
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrDetailNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project details not generated yet"})
	case errors.Is(err, domain.ErrDetailInProgress):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "detail generation in progress, retry shortly"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
