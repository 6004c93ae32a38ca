package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kerbaras/tracker/pkg/app"
	"github.com/kerbaras/tracker/pkg/config"
	"github.com/kerbaras/tracker/pkg/services"
)

var (
	configPath string
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "A terminal anime and manga tracker",
	Long:  "Search anime and manga, keep To Be Read and Read lists, and build a blog post index",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		c, err := config.Load(configPath)
		cobra.CheckErr(err)
		cfg = c
		setupLogger(os.Stderr)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// The alt screen owns the terminal, so the TUI logs to a file.
		logFile, err := openLogFile(cfg.LogFile)
		cobra.CheckErr(err)
		defer logFile.Close()
		setupLogger(logFile)

		tracker := openTracker(cmd.Context())
		defer tracker.Close()

		a := app.NewApp(tracker)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func setupLogger(w io.Writer) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func openTracker(ctx context.Context) *services.Tracker {
	tracker, err := services.NewTracker(ctx, cfg)
	cobra.CheckErr(err)
	return tracker
}
