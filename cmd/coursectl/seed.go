package main

import (
	"context"

	"github.com/lealre/courses-backend/internal/mongodb"
	"github.com/lealre/courses-backend/internal/seed"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	seedFile         string
	seedResetIndexes bool
	seedDrop         bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the course dataset into the database",
	Long: `Reads a JSON array of courses, stores every date as a timestamp,
resets all chapter and course ratings to zero, creates the course indexes
and inserts each course. Courses that fail to insert, such as duplicate
names, are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", seed.DefaultFile, "path to the course dataset")
	seedCmd.Flags().BoolVar(&seedResetIndexes, "reset-indexes", false, "drop and recreate the course indexes")
	seedCmd.Flags().BoolVar(&seedDrop, "drop", false, "drop the courses collection before loading")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	records, err := seed.ReadFile(seedFile)
	if err != nil {
		return err
	}

	return withDB(cmd, func(ctx context.Context, db *mongodb.DB, logger zerolog.Logger) error {
		if seedDrop {
			if err := db.DropCourses(ctx); err != nil {
				return err
			}
			logger.Info().Msg("dropped courses collection")
		}

		report, err := seed.NewLoader(db, logger, seedResetIndexes).Run(ctx, records)
		if err != nil {
			return err
		}

		cmd.Printf("Inserted %d of %d courses.\n", report.Inserted, len(records))
		for _, failed := range report.Failed {
			cmd.Printf("  skipped %q: %v\n", failed.Name, failed.Err)
		}
		return nil
	})
}
