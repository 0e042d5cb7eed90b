package main

import (
	"context"

	"github.com/lealre/courses-backend/internal/mongodb"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	indexesReset  bool
	indexesDelete bool
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the course indexes if they do not exist",
	Args:  cobra.NoArgs,
	RunE:  runIndexes,
}

func init() {
	indexesCmd.Flags().BoolVar(&indexesReset, "reset", false, "delete the indexes and recreate them")
	indexesCmd.Flags().BoolVar(&indexesDelete, "delete", false, "delete every index except _id_")
	indexesCmd.MarkFlagsMutuallyExclusive("reset", "delete")
	rootCmd.AddCommand(indexesCmd)
}

func runIndexes(cmd *cobra.Command, args []string) error {
	return withDB(cmd, func(ctx context.Context, db *mongodb.DB, logger zerolog.Logger) error {
		if indexesDelete {
			if err := db.DeleteAllIndexes(ctx); err != nil {
				return err
			}
			cmd.Println("All indexes deleted successfully.")
			return nil
		}

		if err := db.CreateCourseIndexes(ctx, indexesReset); err != nil {
			return err
		}

		names, err := db.ListCourseIndexes(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("Course indexes: %v\n", names)
		return nil
	})
}
