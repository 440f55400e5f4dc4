package http

import (
	"log/slog"
	"time"

	"github.com/cwaller/notehub/internal/auth"
	"github.com/cwaller/notehub/internal/cache"
	"github.com/cwaller/notehub/internal/config"
	"github.com/cwaller/notehub/internal/http/handlers"
	"github.com/cwaller/notehub/internal/http/middlewares"
	"github.com/cwaller/notehub/internal/observability"
	"github.com/cwaller/notehub/internal/repo/memory"
	"github.com/cwaller/notehub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires the full HTTP surface. A nil pool selects the in-memory
// repositories (tests, local hacking without postgres); a nil noteCache
// falls back to the in-process TTL cache.
func NewRouter(log *slog.Logger, cfg config.Config, pool *pgxpool.Pool, noteCache cache.Notes) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	if cfg.OTLPEndpoint != "" {
		r.Use(otelgin.Middleware("notehub"))
	}

	// wire up repositories
	var (
		usersRepo handlers.UserStore
		notesRepo handlers.NotesStore
	)

	if pool != nil {
		usersRepo = postgres.NewUsersRepo(pool, prom)
		notesRepo = postgres.NewNotesRepo(pool, prom)
	} else {
		usersRepo = memory.NewUsersRepo()
		notesRepo = memory.NewNotesRepo()
	}

	if noteCache == nil {
		noteCache = cache.NewMemory(5 * time.Second)
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())
	authMw := middlewares.NewAuthMiddleware(jwtManager, cfg.AuthHeader)

	// health + metrics
	checks := map[string]func() error{}

	if pool != nil {
		checks["db"] = func() error {
			ctx, cancel := config.WithTimeout(1 * time.Second)
			defer cancel()

			return pool.Ping(ctx)
		}
	}

	if rc, ok := noteCache.(*cache.Redis); ok {
		checks["redis"] = func() error {
			ctx, cancel := config.WithTimeout(1 * time.Second)
			defer cancel()

			return rc.Ping(ctx)
		}
	}

	health := handlers.NewHealthHandler(checks)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up handlers
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager, prom)
	notesHandler := handlers.NewNotesHandler(notesRepo, noteCache, cfg.NoteListLimit)

	// public
	r.POST("/register", authHandler.Register)
	r.POST("/token", authHandler.Token)

	// protected
	protected := r.Group("/", authMw.RequireAuth())
	protected.GET("/users/me", authHandler.Me)
	protected.POST("/add-note", notesHandler.CreateNote)
	protected.GET("/get-note/:id", notesHandler.GetNote)
	protected.GET("/get-notes/", notesHandler.ListNotes)
	protected.PUT("/update-note/:id", notesHandler.UpdateNote)
	protected.DELETE("/delete-note/:id", notesHandler.DeleteNote)

	return r
}
