package main

import (
	"context"
	"log"

	"github.com/Initsogar/gutenberg/internal/bootstrap"
	"github.com/Initsogar/gutenberg/internal/config"
	"github.com/Initsogar/gutenberg/internal/server"
	"github.com/Initsogar/gutenberg/internal/tracer"
	"github.com/Initsogar/gutenberg/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting tree invalidation consumer...")
		if err := container.InvalidationService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	// 5. Initialize and Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
