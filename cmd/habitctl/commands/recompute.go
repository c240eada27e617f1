package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/habitkit/habit-api/internal/config"
	"github.com/habitkit/habit-api/internal/database"
	"github.com/habitkit/habit-api/internal/habits"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRecomputeCmd creates the recompute command. It rebuilds the derived
// streak counters directly from the log store, for when the repair queue
// was down or counters are suspected stale.
func NewRecomputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute derived streak counters from logs",
	}
	cmd.AddCommand(newRecomputeOwnerCmd())
	cmd.AddCommand(newRecomputeHabitCmd())
	return cmd
}

func newRecomputeOwnerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "owner <owner-id>",
		Short: "Recompute streaks for every habit of an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid owner id %q: %w", args[0], err)
			}

			engine, cleanup, err := newEngine()
			if err != nil {
				return err
			}
			defer cleanup()

			count, err := engine.RecomputeOwner(context.Background(), ownerID)
			if err != nil {
				return fmt.Errorf("recompute owner: %w", err)
			}
			fmt.Printf("Recomputed %d habit(s) for owner %s\n", count, ownerID)
			return nil
		},
	}
}

func newRecomputeHabitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "habit <habit-id>",
		Short: "Recompute streaks for a single habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			habitID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid habit id %q: %w", args[0], err)
			}

			engine, cleanup, err := newEngine()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := engine.RecomputeHabit(context.Background(), habitID); err != nil {
				return fmt.Errorf("recompute habit: %w", err)
			}
			fmt.Printf("Recomputed habit %s\n", habitID)
			return nil
		},
	}
}

// newEngine connects to the database and builds an engine without a repair
// queue, since a CLI recompute failing should just fail loudly.
func newEngine() (*habits.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
		}
	}

	habitRepo := database.NewHabitRepository(db)
	logRepo := database.NewHabitLogRepository(db)
	engine := habits.NewService(habitRepo, logRepo, zap.NewNop())
	return engine, cleanup, nil
}
