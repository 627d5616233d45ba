package main

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/heywrld/internal/cart"
	"github.com/example/heywrld/internal/config"
	"github.com/example/heywrld/internal/database"
	"github.com/example/heywrld/internal/routes"
	"github.com/example/heywrld/internal/storage"
)

func main() {
	cfg := config.Load()

	var store storage.Storage
	switch cfg.StorageDriver {
	case "postgres":
		db := database.Connect(cfg.DatabaseURL)
		store = storage.NewPostgresStore(db)
	case "memory":
		store = storage.NewMemoryStore()
	}

	if cfg.SeedDemoData {
		if err := storage.Seed(context.Background(), store); err != nil {
			log.Fatalf("seeding demo data failed: %v", err)
		}
		log.Println("demo data seeded")
	}

	var cartStore cart.Store
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}
		cartStore = cart.NewRedisStore(client)
	} else {
		cartStore = cart.NewMemoryStore()
	}
	manager := cart.NewManager(cartStore)

	app := fiber.New(fiber.Config{
		AppName: "Heywrld Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, store, manager, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
