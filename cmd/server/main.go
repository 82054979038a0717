package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/scolarite/exam-scheduling/internal/config"
	"github.com/scolarite/exam-scheduling/internal/database"
	"github.com/scolarite/exam-scheduling/internal/handler"
	"github.com/scolarite/exam-scheduling/internal/queue"
	"github.com/scolarite/exam-scheduling/internal/refresh"
	"github.com/scolarite/exam-scheduling/internal/repository"
	"github.com/scolarite/exam-scheduling/internal/router"
)

func main() {
	// Load .env if present; in prod the env comes from the deployment.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories share the one pool; the session store checks location
	// names against the registry, hence the dependency.
	locations := repository.NewLocationRepo(db)
	sessions := repository.NewSessionRepo(db, locations)
	roster := repository.NewRosterRepo(db)

	refresher := refresh.New(sessions, roster)
	admin := handler.NewAdminHandler(locations, sessions, roster, refresher)

	rdb := config.NewRedisClient() // nil disables cache and rate limiting

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAdmin(e, admin, cfg.JWTSecret, rdb)

	// Background consumer appends detected-conflict events to the audit
	// log; it reconnects on its own and never blocks the server.
	go queue.StartConflictConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
