package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.DELETE("/:id", h.remove)
	rg.POST("/:id/details", h.getDetails)
	rg.GET("/:id/paper", h.paper)
}
