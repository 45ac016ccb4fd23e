package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "game-tribunal/internal/api/http"
	"game-tribunal/internal/api/ws"
	"game-tribunal/internal/config"
	"game-tribunal/internal/room"
	"game-tribunal/internal/store"
)

// @title Game Tribunal Room API
// @version 1.0
// @description Room coordination service for ephemeral multiplayer lobbies (Go + Gin)
// @BasePath /
func main() {
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cfg := config.Load()

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, room.SystemClock{}, room.UUIDSource{}, nil, cfg.CodeAttempts, log)
	sessions := room.NewSessionRegistry()
	hub := ws.NewHub(rm, sessions, log)
	rm.SetHub(hub)

	monitor := room.NewMonitor(mem, room.SystemClock{}, hub,
		cfg.MonitorInterval, cfg.InactiveAfter, cfg.DisconnectAfter, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		monitor.Run(ctx)
	}()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(rm, hub, cfg),
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	<-monitorDone
}
