package main

import (
	"log"
	"os"
	"time"

	"markano/database"
	"markano/handlers"
	"markano/handlers/admin"
	"markano/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database and handler wiring
	database.InitDB()
	defer database.CloseDB()
	handlers.InitHandlers()

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Student join flow with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/join", handlers.JoinChallenge)

	// Admin auth
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRateLimitMiddleware())
	adminGroup.Post("/login", admin.Login)
	adminGroup.Post("/logout", admin.Logout)
	adminGroup.Get("/verify", middleware.AdminAuthMiddleware, admin.VerifyToken)

	// Challenge administration
	challengeGroup := api.Group("/challenges")
	challengeGroup.Use(middleware.AdminAuthMiddleware)
	challengeGroup.Post("/", handlers.CreateChallenge)
	challengeGroup.Get("/", handlers.GetChallenges)
	challengeGroup.Get("/:id", handlers.GetChallenge)
	challengeGroup.Post("/:id/start", handlers.StartChallenge)
	challengeGroup.Post("/:id/pause", handlers.PauseChallenge)
	challengeGroup.Post("/:id/resume", handlers.ResumeChallenge)
	challengeGroup.Post("/:id/end", handlers.EndChallenge)
	challengeGroup.Post("/:id/reset", handlers.ResetChallenge)
	challengeGroup.Post("/:id/adjust-time", handlers.AdjustChallengeTime)
	challengeGroup.Post("/:id/teams", handlers.CreateTeam)
	challengeGroup.Post("/:id/teams/default", handlers.CreateDefaultTeams)
	challengeGroup.Get("/:id/teams", handlers.GetTeams)
	challengeGroup.Post("/:id/participants", handlers.AddParticipants)
	challengeGroup.Post("/:id/shuffle", handlers.ShuffleTeams)
	challengeGroup.Get("/:id/results", handlers.GetChallengeResults)

	// Participant administration
	participantGroup := api.Group("/participants")
	participantGroup.Use(middleware.AdminAuthMiddleware)
	participantGroup.Delete("/:id", handlers.RemoveParticipant)
	participantGroup.Post("/:id/unlock", handlers.UnlockParticipant)

	// Participant-facing routes
	api.Post("/submissions", middleware.ParticipantAuthMiddleware, handlers.SubmitCode)
	api.Get("/submissions/me", middleware.ParticipantAuthMiddleware, handlers.GetMySubmission)
	api.Post("/heartbeat", middleware.ParticipantAuthMiddleware, handlers.Heartbeat)

	violationGroup := api.Group("/violations")
	violationGroup.Use(middleware.ParticipantAuthMiddleware)
	violationGroup.Post("/", handlers.ReportViolation)
	violationGroup.Post("/lock", handlers.LockEditor)
	violationGroup.Post("/disqualify", handlers.DisqualifyParticipant)

	// Live challenge status feed
	app.Use("/ws", handlers.RequireWebSocketUpgrade)
	app.Get("/ws/challenges/:code", handlers.ChallengeSocket())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🌐 Live status feed available at ws://localhost:%s/ws/challenges/:code", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
