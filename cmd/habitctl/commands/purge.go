package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/habitkit/habit-api/internal/config"
	"github.com/habitkit/habit-api/internal/database"
	"github.com/habitkit/habit-api/internal/queue"
	"github.com/spf13/cobra"
)

// NewPurgeCmd creates the purge command with archived and dlq subcommands.
func NewPurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Retention purges for archived habits and the dead letter queue",
	}
	cmd.AddCommand(newPurgeArchivedCmd())
	cmd.AddCommand(newPurgeDLQCmd())
	return cmd
}

func newPurgeArchivedCmd() *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "archived",
		Short: "Hard-delete habits archived longer ago than the retention window",
		Long:  "Permanently deletes archived habits and their logs. This cannot be undone.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive (e.g. 720h for 30 days)")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()

			cutoff := time.Now().UTC().Add(-olderThan)
			repo := database.NewHabitRepository(db)
			deleted, err := repo.DeleteArchivedBefore(context.Background(), cutoff)
			if err != nil {
				return fmt.Errorf("purge archived habits: %w", err)
			}
			fmt.Printf("Deleted %d archived habit(s) older than %s\n", deleted, cutoff.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Retention window (e.g. 720h)")
	return cmd
}

func newPurgeDLQCmd() *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "dlq",
		Short: "Drop dead-lettered repair jobs older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive (e.g. 24h)")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL)
			if err != nil {
				return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
			}
			defer func() {
				if err := jobQueue.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close RabbitMQ connection: %v\n", err)
				}
			}()

			purged, err := jobQueue.PurgeOlderThan(context.Background(), olderThan)
			if err != nil {
				return fmt.Errorf("purge dead letter queue: %w", err)
			}
			fmt.Printf("Purged %d dead-lettered job(s)\n", purged)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "Retention window (e.g. 24h)")
	return cmd
}
