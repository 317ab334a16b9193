package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/models"
	"catalog/internal/server"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Database ---
	// One connection attempt; the process exits if it fails.
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	stores, err := database.Open(connectCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// An in-memory catalog starts empty on every run, so give it something to show.
	if stores.Backend == config.DriverMemory {
		if err := database.Seed(context.Background(), stores.Products, demoProducts()); err != nil {
			log.Printf("Error seeding products: %v", err)
		}
	}

	// --- Product events (optional) ---
	events, mqClient := connectEvents(cfg)

	app := server.NewApp(cfg, stores, events)

	// --- Start HTTP Server ---
	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()
	log.Printf("Server started at http://localhost%s", cfg.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	if err := stores.Close(closeCtx); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
		}
	}
	log.Println("Server gracefully stopped")
}

// connectEvents dials RabbitMQ when RABBITMQ_URL is set and starts a consumer
// that logs product events. A broker failure disables events rather than
// stopping the API.
func connectEvents(cfg *config.Config) (services.EventPublisher, *rabbitmq.Client) {
	if cfg.RabbitMQURL == "" {
		log.Println("RABBITMQ_URL not set, product events disabled")
		return nil, nil
	}

	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Failed to initialize RabbitMQ client, product events disabled: %v", err)
		return nil, nil
	}
	if err := client.ConsumeProductEvents(rabbitmq.LogProductEvent); err != nil {
		log.Printf("Failed to start RabbitMQ consumer: %v", err)
	}
	return client, client
}

func demoProducts() []models.Product {
	return []models.Product{
		{Name: "Laptop", Price: 1200.00, Image: "https://images.example.com/laptop.png"},
		{Name: "Keyboard", Price: 75.00, Image: "https://images.example.com/keyboard.png"},
		{Name: "Mouse", Price: 25.00, Image: "https://images.example.com/mouse.png"},
	}
}
