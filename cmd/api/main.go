package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"scoai/resume-screener/internal/config"
	"scoai/resume-screener/internal/handlers"
	"scoai/resume-screener/internal/repositories"
	"scoai/resume-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	projectRepo := repositories.NewProjectRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	recRepo := repositories.NewRecommendationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Domain services
	searchService := services.NewSearchService(resumeRepo, geminiService, qdrantService)
	scorer := services.NewResumeScorer(geminiService, cfg.Gemini.RetryMaxAttempts)
	ranker := services.NewCandidateRanker(geminiService, cfg.Gemini.RetryMaxAttempts)
	analyzerService := services.NewAnalyzerService(resumeRepo, scorer)
	shortlistService := services.NewShortlistService(resumeRepo)
	recommenderService := services.NewRecommenderService(resumeRepo, recRepo, ranker)
	projectService := services.NewProjectService(projectRepo, resumeRepo, recRepo, storageService, searchService)
	log.Println("✅ Domain services initialized")

	// Batch runner
	runner := services.NewBatchRunner(analyzerService)
	runner.Start()

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(projectService)
	uploadHandler := handlers.NewUploadHandler(
		projectRepo,
		resumeRepo,
		storageService,
		pdfParser,
		searchService,
		cfg.Storage.MaxFileSize,
	)
	analyzeHandler := handlers.NewAnalyzeHandler(projectRepo, resumeRepo, runner)
	shortlistHandler := handlers.NewShortlistHandler(shortlistService)
	recommendHandler := handlers.NewRecommendHandler(recommenderService)
	searchHandler := handlers.NewSearchHandler(searchService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SCO Resume Screener API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Projects
	api.Post("/projects", projectHandler.HandleCreate)
	api.Get("/projects", projectHandler.HandleList)
	api.Get("/projects/:id", projectHandler.HandleGet)
	api.Delete("/projects/:id", projectHandler.HandleDelete)

	// Resumes
	api.Post("/projects/:id/resumes", uploadHandler.HandleUpload)
	api.Get("/projects/:id/resumes", uploadHandler.HandleList)
	api.Delete("/resumes/:id", uploadHandler.HandleDelete)

	// Analysis
	api.Post("/projects/:id/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/analyze/:jobID", analyzeHandler.HandleJobStatus)
	api.Delete("/analyze/:jobID", analyzeHandler.HandleCancel)
	api.Get("/projects/:id/candidates", analyzeHandler.HandleCandidates)
	api.Get("/projects/:id/candidates/search", searchHandler.HandleSearch)

	// Shortlist
	api.Post("/projects/:id/shortlist", shortlistHandler.HandleAdd)
	api.Get("/projects/:id/shortlist", shortlistHandler.HandleList)
	api.Delete("/shortlist/:id", shortlistHandler.HandleRemove)
	api.Put("/shortlist/:id/note", shortlistHandler.HandleUpdateNote)

	// Recommendations
	api.Post("/projects/:id/recommendations", recommendHandler.HandleRecommend)
	api.Get("/projects/:id/recommendations", recommendHandler.HandleHistory)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "SCO Resume Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/projects",
				"POST /api/v1/projects/:id/resumes",
				"POST /api/v1/projects/:id/analyze",
				"POST /api/v1/projects/:id/shortlist",
				"POST /api/v1/projects/:id/recommendations",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		runner.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
