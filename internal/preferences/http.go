package preferences

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-genie/dev-genie-backend/internal/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.get)
	rg.PUT("", h.put)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "preferences": p})
}

// put merges the JSON body onto the stored preferences, so a partial body
// only changes the fields it names.
func (h *Handler) put(c *gin.Context) {
	p, err := h.svc.Update(c.Request.Context(), auth.UserDBID(c), func(p *Preferences) error {
		if err := c.ShouldBindJSON(p); err != nil {
			return fmt.Errorf("%w: invalid body", ErrInvalid)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "preferences": p})
}
