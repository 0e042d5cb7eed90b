package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lealre/courses-backend/internal/config"
	"github.com/lealre/courses-backend/internal/logx"
	"github.com/lealre/courses-backend/internal/metrics"
	"github.com/lealre/courses-backend/internal/mongodb"
	"github.com/lealre/courses-backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logx.New("info", false)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logx.New(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	db := mongodb.NewDB(client, cfg.DatabaseName)
	logger.Info().Str("database", db.GetDatabaseName()).Msg("connected to MongoDB")

	handler := server.NewServer(db, logger, metrics.NewMetrics())

	if err := server.ListenAndServe(ctx, cfg.Addr(), handler, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}
