package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *pgxpool.Pool and *sql.DB wrappers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Providers []string  `json:"providers"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
	providers   []string
}

func NewHealthHandler(serviceName, version string, db Pinger, providers []string) *HealthHandler {
	if providers == nil {
		providers = []string{}
	}
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		providers:   providers,
	}
}

// HealthCheck reports "degraded" with 503 when the database does not answer.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	dbStatus := "disabled"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.db.Ping(pingCtx); err != nil {
			dbStatus = "down"
			status, code = "degraded", http.StatusServiceUnavailable
		} else {
			dbStatus = "up"
		}
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Providers: h.providers,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
