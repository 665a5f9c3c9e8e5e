package bootstrap

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/dev-genie/dev-genie-backend/internal/api/http"
	"github.com/dev-genie/dev-genie-backend/internal/api/http/middleware"
	"github.com/dev-genie/dev-genie-backend/internal/auth"
	authhttp "github.com/dev-genie/dev-genie-backend/internal/auth/http"
	authrepo "github.com/dev-genie/dev-genie-backend/internal/auth/repository"
	authsvc "github.com/dev-genie/dev-genie-backend/internal/auth/service"
	"github.com/dev-genie/dev-genie-backend/internal/docgen"
	"github.com/dev-genie/dev-genie-backend/internal/generation/llm"
	"github.com/dev-genie/dev-genie-backend/internal/metrics"
	"github.com/dev-genie/dev-genie-backend/internal/preferences"
	projecthttp "github.com/dev-genie/dev-genie-backend/internal/projects/http"
	"github.com/dev-genie/dev-genie-backend/internal/projects/lock"
	"github.com/dev-genie/dev-genie-backend/internal/projects/repository"
	"github.com/dev-genie/dev-genie-backend/internal/projects/service"
	"github.com/dev-genie/dev-genie-backend/internal/resources"
	"github.com/dev-genie/dev-genie-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Pool        *pgxpool.Pool
	SQL         *sql.DB
	// Redis is optional; nil keeps detail dedupe in-process only.
	Redis       *redis.Client
	Coordinator *llm.Coordinator
	GitHub      resources.RepoSearcher
	// Auth sets the caller identity; one of the middleware package's auth handlers.
	Auth        gin.HandlerFunc
	CORSOrigins []string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(dep.CORSOrigins))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(metrics.Middleware())

	var pinger httpapi.Pinger
	if dep.Pool != nil {
		pinger = dep.Pool
	}
	providers := make([]string, 0, len(llm.Providers))
	for _, p := range dep.Coordinator.Available() {
		providers = append(providers, string(p))
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, pinger, providers)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(dep.Auth)
	api.Use(auth.WithUser(users.NewRepo(dep.Pool)))

	prefsSvc := preferences.NewService(preferences.NewRepository(dep.SQL))
	projectRepo := repository.NewProjectRepository(dep.SQL)
	detailRepo := repository.NewDetailRepository(dep.SQL)

	var locker service.Locker
	if dep.Redis != nil {
		locker = lock.NewRedisLocker(dep.Redis, lock.DefaultTTL)
	}

	projects := projecthttp.New(
		service.NewProjectService(dep.Coordinator, projectRepo, prefsSvc),
		service.NewDetailService(dep.Coordinator, projectRepo, detailRepo, locker),
	)
	projects.Register(api.Group("/projects"))

	docgen.NewHandler(docgen.NewService(dep.Coordinator)).Register(api.Group("/documentation"))
	resources.NewHandler(resources.NewService(dep.Coordinator, dep.GitHub)).Register(api.Group("/resources"))
	preferences.NewHandler(prefsSvc).Register(api.Group("/preferences"))

	profile := authhttp.New(authsvc.NewAuthService(authrepo.NewUserRepository(dep.SQL)))
	profile.Register(api.Group("/profile"))

	return r
}
