// Command alignctl recomputes and inspects goal-alignment day records
// directly against the database, without going through the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JorgeSaicoski/alignment-tracker/internal/config"
	"github.com/JorgeSaicoski/alignment-tracker/internal/db"
	"github.com/JorgeSaicoski/alignment-tracker/internal/services/alignment"
	"github.com/JorgeSaicoski/alignment-tracker/internal/store"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(openService).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Engine is the part of alignment.Service the commands drive.
type Engine interface {
	ComputeDailyMetrics(ctx context.Context, userID, date string) (*db.GoalAlignedDay, error)
	Streak(ctx context.Context, userID string) (*alignment.StreakSummary, error)
	WeeklySummary(ctx context.Context, userID, date string) (*alignment.WeeklySummary, error)
}

type openFunc func(configDir string) (Engine, error)

func openService(configDir string) (Engine, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}
	database, err := db.Connect(cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	return alignment.NewService(store.New(database).Sources(), cfg.Alignment()), nil
}

func newRootCmd(open openFunc) *cobra.Command {
	var (
		configDir string
		userID    string
	)

	root := &cobra.Command{
		Use:           "alignctl",
		Short:         "Recompute and inspect daily goal-alignment records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing alignment.yaml")
	root.PersistentFlags().StringVarP(&userID, "user", "u", "", "user id (required)")
	_ = root.MarkPersistentFlagRequired("user")

	var date string
	recompute := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute and store the day record for --date (default today)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := open(configDir)
			if err != nil {
				return err
			}
			record, err := engine.ComputeDailyMetrics(cmd.Context(), userID, date)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), record)
		},
	}
	recompute.Flags().StringVarP(&date, "date", "d", "", "YYYY-MM-DD or RFC3339 instant")

	var weekDate string
	weekly := &cobra.Command{
		Use:   "weekly",
		Short: "Print the Sunday..Saturday summary around --date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := open(configDir)
			if err != nil {
				return err
			}
			summary, err := engine.WeeklySummary(cmd.Context(), userID, weekDate)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}
	weekly.Flags().StringVarP(&weekDate, "date", "d", "", "any day of the week, YYYY-MM-DD")

	streak := &cobra.Command{
		Use:   "streak",
		Short: "Print the current and longest streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := open(configDir)
			if err != nil {
				return err
			}
			summary, err := engine.Streak(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}

	root.AddCommand(recompute, weekly, streak)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
