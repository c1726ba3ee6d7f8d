package app

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/giriraj47/helpstudyabroad/internal/config"
	"github.com/giriraj47/helpstudyabroad/internal/handler"
	"github.com/giriraj47/helpstudyabroad/internal/logger"
	"github.com/giriraj47/helpstudyabroad/internal/middleware"
	"github.com/giriraj47/helpstudyabroad/internal/session"
	"github.com/giriraj47/helpstudyabroad/internal/upstream"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	client := upstream.New(cfg.UpstreamBaseURL)

	namespace := cfg.StorageNamespace
	if namespace == "" {
		namespace = uuid.NewString()
	}
	storage := session.NewRedisStorage(infra.Redis.Client, namespace)

	store, err := session.NewStore(session.Options{
		Gateway: client,
		Storage: storage,
	})
	if err != nil {
		return nil, nil, err
	}

	// Boot-time restore from durable storage. No request cookie exists
	// yet; per-request LoadSession calls handle cookie repair later.
	store.LoadSession(ctx, session.NopJar{})

	apiHandler := handler.NewHandler(store, client)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	gate := middleware.NewRouteGate()
	router.Use(middleware.GinRouteGate(gate))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:" + cfg.AppPort},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	// ----------------------------
	// API Routes (gate passthrough)
	// ----------------------------

	apiHandler.RegisterRoutes(router)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Pages (behind the gate)
	// ----------------------------

	router.Static("/static", "./web/static")

	router.GET("/", func(c *gin.Context) {
		c.File("./web/index.html")
	})

	router.GET("/login", func(c *gin.Context) {
		c.File("./web/login.html")
	})

	router.GET("/users", func(c *gin.Context) {
		c.File("./web/users.html")
	})

	router.GET("/products", func(c *gin.Context) {
		c.File("./web/products.html")
	})

	logger.Info("routes registered", map[string]any{
		"count": len(router.Routes()),
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.Redis.Close()
	}, nil
}
