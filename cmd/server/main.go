package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/socialsched/goscheduler/internal/config"
	"github.com/socialsched/goscheduler/internal/middleware"
	"github.com/socialsched/goscheduler/internal/rest"
	"github.com/socialsched/goscheduler/scheduler/application"
	"github.com/socialsched/goscheduler/scheduler/persistence"
	"github.com/socialsched/goscheduler/shared/db/sqlite"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.Load()

	database := sqlite.NewSQLiteDB(&sqlite.SQLiteConfig{Path: cfg.DBPath})
	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	store := persistence.NewLocalStore(database.DB())
	gateway := application.NewPlatformGateway()
	exporter := application.NewExporter(cfg.ExportDir)
	service := application.NewScheduleService(store, gateway, exporter)

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))

	rest.NewApi(router, service, gateway)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
