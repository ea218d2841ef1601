package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/inkwell/internal/config"
	"github.com/jackzampolin/inkwell/internal/worker"
)

var (
	workerOnce     bool
	workerLimit    int
	workerInterval time.Duration
	workerBookIDs  []string
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Discover eligible books and run them through the workflow",
	Long: `Start the worker. By default it polls the datastore for eligible
books and processes each one sequentially, forever. A failed book is
marked errored and left for manual intervention; it does not stop the
batch and is not picked up again.

Examples:
  inkwell worker                     # Poll every 60s
  inkwell worker --once              # One discovery pass, then exit
  inkwell worker --interval 5m      # Poll every five minutes
  inkwell worker --book-id ID        # Skip discovery, run one book`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		limit := a.cfg.Worker.Limit
		if cmd.Flags().Changed("limit") {
			limit = workerLimit
		}
		interval := a.cfg.Worker.Interval
		if cmd.Flags().Changed("interval") {
			interval = workerInterval
		}

		w, err := worker.New(worker.Config{
			Store:    a.store,
			Engine:   a.engine,
			Limit:    limit,
			Interval: interval,
			Delay:    a.cfg.Worker.Delay,
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		if len(workerBookIDs) > 0 {
			w.RunBooks(ctx, workerBookIDs)
			return nil
		}
		if workerOnce {
			_, err := w.RunOnce(ctx)
			return err
		}

		// The long-running loop watches the config file; discovery limit
		// changes apply on the next pass, everything else on restart.
		a.cm.OnChange(func(cfg *config.Config) {
			w.SetLimit(cfg.Worker.Limit)
			logger.Info("configuration reloaded", "worker_limit", cfg.Worker.Limit)
		})
		a.cm.WatchConfig()

		// Blocks until interrupted.
		if err := w.RunLoop(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	workerCmd.Flags().BoolVar(&workerOnce, "once", false, "run one discovery pass and exit")
	workerCmd.Flags().IntVar(&workerLimit, "limit", 5, "max books per discovery filter")
	workerCmd.Flags().DurationVar(&workerInterval, "interval", 60*time.Second, "poll interval")
	workerCmd.Flags().StringArrayVar(&workerBookIDs, "book-id", nil, "run specific book ids instead of discovering (repeatable)")

	rootCmd.AddCommand(workerCmd)
}
