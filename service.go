package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"tcheplay/config"
	"tcheplay/handler"
	"tcheplay/ingest"
	"tcheplay/storage"
	"tcheplay/youtube"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	if cfg.YouTube.APIKey == "" {
		logger.Error("missing youtube api key")
		os.Exit(1)
	}

	postgres, err := storage.NewPostgres(storage.PostgresInfo{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
	})
	if err != nil {
		logger.Error("unable to connect to postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	movieRepo := storage.NewPostgresMovieRepository(postgres)

	ctx := context.Background()
	ytService, err := youtubeapi.NewService(ctx, option.WithAPIKey(cfg.YouTube.APIKey))
	if err != nil {
		logger.Error("unable to create youtube service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	ytClient := youtube.NewClient(ytService)

	ingester := ingest.NewIngester(ytClient, ytClient, movieRepo, cfg.Ingest.DefaultTerms, logger)

	server := handler.NewServer(handler.NewMovieAPI(movieRepo, ingester, logger), logger)
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), server); err != nil {
			logger.Error("http server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()
	logger.Info("http server started", slog.Int("port", cfg.Port))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt)
	<-done

	logger.Info("service stopped")
}
