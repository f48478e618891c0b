package routes

import (
	"log"

	"nclexprep/backend/config"
	"nclexprep/backend/controllers"
	"nclexprep/backend/middleware"
	"nclexprep/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires the service layer and registers every endpoint. The event
// publisher is optional: pass nil when no broker is configured.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config,
	publisher *services.EventPublisher, logger *log.Logger) {

	repo := services.NewQuestionRepository(db, cfg.UseSampleData)
	tracker := services.NewUsageTracker(db)
	sampler := services.NewSampler()
	assembler := services.NewTestAssembler(repo, tracker, sampler)
	aggregator := services.NewProgressAggregator(db, publisher, logger)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Question bank routes
	questionsController := controllers.NewQuestionsController(db, cfg, repo)
	app.Get("/api/topics", authMiddleware, questionsController.GetTopics)

	// Tests routes
	testsController := controllers.NewTestsController(db, cfg, assembler, repo, tracker, aggregator)
	tests := app.Group("/api/tests", authMiddleware)
	tests.Get("/", testsController.GetUserTests)
	tests.Post("/", testsController.BuildTest)
	tests.Post("/quick-start", testsController.QuickStart)
	tests.Get("/available-count", testsController.AvailableCount)
	tests.Get("/unused-count", testsController.UnusedCount)
	tests.Post("/:id/answers", testsController.RecordAnswer)
	tests.Post("/:id/skip", testsController.SkipQuestion)
	tests.Post("/:id/mark", testsController.MarkQuestion)
	tests.Post("/:id/finish", testsController.FinishTest)
	tests.Post("/:id/abandon", testsController.AbandonTest)
	tests.Get("/:id/results", testsController.GetTestResults)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/progress", authMiddleware, progressController.GetProgress)
	app.Get("/api/progress/overview", authMiddleware, progressController.GetProgressOverview)

	// Admin routes
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Post("/questions", questionsController.CreateQuestion)
	admin.Put("/questions/:id", questionsController.UpdateQuestion)
	admin.Get("/questions/:id/analytics", questionsController.GetQuestionAnalytics)
	admin.Get("/analytics", questionsController.GetPlatformAnalytics)
}
