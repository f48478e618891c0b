package main

import (
	"log"

	"nclexprep/backend/config"
	"nclexprep/backend/middleware"
	"nclexprep/backend/routes"
	"nclexprep/backend/services"
	"nclexprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Initialize database. With sample data enabled the question bank is
	// served from the bundled pool, but users, sessions and tracking still
	// need Postgres.
	var db *gorm.DB
	db, err = utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Event publisher is optional; without a broker URL completion events
	// are simply not emitted.
	var publisher *services.EventPublisher
	if cfg.AMQPURL != "" {
		publisher, err = services.NewEventPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Printf("event publisher disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, publisher, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
