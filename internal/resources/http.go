package resources

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.fetch)
}

func (h *Handler) fetch(c *gin.Context) {
	var q Query
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.svc.Fetch(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"githubRepos": res.GitHubRepos,
		"aiResources": res.AIResources,
		"category":    res.Category,
		"searchTerm":  res.SearchTerm,
		"sources":     res.Sources,
	})
}
