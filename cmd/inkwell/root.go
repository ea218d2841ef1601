package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/inkwell/version"
)

var (
	cfgFile  string
	logLevel string

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Approval-gated book generation workflow",
	Long: `Inkwell drives books through an LLM-powered generation workflow:
outline, chapter-by-chapter drafting, compilation and notification.

Every stage is gated by editor-managed approval flags in the datastore,
so a human stays in the loop between outline and chapters, between
chapters, and before the final compile. Books are imported from
spreadsheets and the finished artifacts are uploaded to blob storage.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.inkwell/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn or error",
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger = newLogger(logLevel)
		slog.SetDefault(logger)
	}

	rootCmd.AddCommand(versionCmd)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
