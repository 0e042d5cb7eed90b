package main

import (
	"context"
	"fmt"

	"github.com/lealre/courses-backend/internal/config"
	"github.com/lealre/courses-backend/internal/logx"
	"github.com/lealre/courses-backend/internal/mongodb"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coursectl",
	Short: "Maintenance commands for the courses database",
	Long: `coursectl runs one-shot operations against the courses database:
loading the course dataset and managing the collection indexes.
The connection is read from MONGO_URI (and MONGODB_DB), as for the server.`,
	SilenceUsage: true,
}

// withDB loads the configuration, connects and hands a ready DB to fn. The
// connection is closed when fn returns.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, db *mongodb.DB, logger zerolog.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logx.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, true)
	ctx := logx.WithLogger(cmd.Context(), logger)

	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer client.Disconnect(context.Background())

	return fn(ctx, mongodb.NewDB(client, cfg.DatabaseName), logger)
}
