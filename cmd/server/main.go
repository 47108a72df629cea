package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/primavista/lounge-backend/internal/config"
	"github.com/primavista/lounge-backend/internal/database"
	"github.com/primavista/lounge-backend/internal/handler"
	"github.com/primavista/lounge-backend/internal/queue"
	"github.com/primavista/lounge-backend/internal/repository"
	"github.com/primavista/lounge-backend/internal/router"
	"github.com/primavista/lounge-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("database: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	entries := repository.NewEntryRepo(db)
	passengers := repository.NewPassengerRepo(db)
	reservations := repository.NewReservationRepo(db)
	settings := repository.NewSettingRepo(db)

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users, tokens),
		Checkin:      handler.NewCheckinHandler(entries, service.PublishCheckin),
		Passengers:   handler.NewPassengerHandler(passengers, entries),
		Dashboard:    handler.NewDashboardHandler(entries),
		Reports:      handler.NewReportHandler(entries),
		Reservations: handler.NewReservationHandler(reservations),
		Settings:     handler.NewSettingsHandler(cfg, settings, users),
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and login rate limit disabled")
	}

	// Background consumer mirrors check-in events into logs/checkin.log.
	go func() {
		if err := queue.StartCheckinConsumer(); err != nil {
			log.Printf("checkin consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, cfg, h, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
