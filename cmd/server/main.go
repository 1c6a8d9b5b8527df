package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/opencertify/certify/internal/config"
	"github.com/opencertify/certify/internal/database"
	"github.com/opencertify/certify/internal/draft"
	"github.com/opencertify/certify/internal/handlers"
	"github.com/opencertify/certify/internal/middleware"
	"github.com/opencertify/certify/internal/models"
	"github.com/opencertify/certify/internal/types"
	"github.com/redis/go-redis/v9"

	_ "github.com/opencertify/certify/docs/api" // Swagger docs
)

// @title Certify API
// @version 1.0.0
// @description Product certification service: draft editing, submission, review
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/opencertify/certify

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed reference catalogs and, when configured, demo users
	if err := database.SeedCatalog(db); err != nil {
		log.Fatalf("Failed to seed catalogs: %v", err)
	}
	if cfg.SeedDemoUsers {
		if err := database.SeedDemoUsers(db); err != nil {
			log.Fatalf("Failed to seed demo users: %v", err)
		}
	}

	// Pick the draft store backend
	store := newDraftStore(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("certify")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db}
	draftHandler := &handlers.DraftHandler{DB: db, Store: store}
	appHandler := &handlers.ApplicationHandler{DB: db}
	companyHandler := &handlers.CompanyHandler{DB: db}
	profileHandler := &handlers.CustomerProfileHandler{DB: db}
	reviewHandler := &handlers.ReviewHandler{DB: db}
	catalogHandler := &handlers.CatalogHandler{DB: db}
	healthHandler := &handlers.HealthHandler{Config: cfg, DB: db}

	// Public routes
	api.Get("/health", healthHandler.Check)
	api.Post("/auth/login", authHandler.Login)

	// Authenticated routes
	auth := middleware.Auth(db)
	api.Post("/auth/logout", auth, authHandler.Logout)

	customer := middleware.RequireRole(models.RoleCustomer)
	cservice := middleware.RequireRole(models.RoleCService)
	reviewer := middleware.RequireRole(models.RoleReviewer)

	// Draft routes (customer only): one tree per user, mutated in place
	drafts := api.Group("/draft", auth, customer)
	drafts.Get("/", draftHandler.GetDraft)
	drafts.Patch("/", draftHandler.SetField)
	drafts.Delete("/", draftHandler.DiscardDraft)
	drafts.Patch("/company-info", draftHandler.SetCompanyField)
	drafts.Post("/partners", draftHandler.AddPartner)
	drafts.Patch("/partners/:index", draftHandler.SetPartnerField)
	drafts.Delete("/partners/:index", draftHandler.RemovePartner)
	drafts.Post("/partners/:index/products", draftHandler.AddProduct)
	drafts.Patch("/partners/:index/products/:pindex", draftHandler.SetProductField)
	drafts.Delete("/partners/:index/products/:pindex", draftHandler.RemoveProduct)
	drafts.Post("/submit", draftHandler.Submit)

	// Application routes
	api.Post("/applications", auth, customer, appHandler.Create)
	api.Get("/applications", auth, appHandler.List)
	api.Get("/applications/:id", auth, appHandler.Get)

	// Catalog routes
	api.Get("/product-categories", auth, catalogHandler.ProductCategories)
	api.Get("/raw-materials", auth, catalogHandler.RawMaterials)

	// Company directory and customer onboarding routes
	api.Get("/companies", auth, companyHandler.List)
	api.Get("/companies/:id", auth, companyHandler.Get)
	api.Post("/customer-profiles", auth, cservice, profileHandler.Create)
	api.Get("/customer-profiles", auth, cservice, profileHandler.List)
	api.Get("/customer-profiles/:id", auth, cservice, profileHandler.Get)

	// Review routes (reviewers only)
	api.Get("/review/applications", auth, reviewer, reviewHandler.Queue)
	api.Patch("/review/applications/:id", auth, reviewer, reviewHandler.UpdateStatus)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// newDraftStore builds the configured draft store backend.
func newDraftStore(cfg *config.Config) draft.Store {
	if cfg.DraftStore == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ttl := time.Duration(cfg.DraftTTLHours) * time.Hour
		log.Printf("Using redis draft store at %s (ttl %s)", cfg.RedisAddr, ttl)
		return draft.NewRedisStore(client, ttl)
	}
	log.Println("Using in-memory draft store")
	return draft.NewMemoryStore()
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check if it's one of ours
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
