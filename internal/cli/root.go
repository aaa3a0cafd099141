package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/tailorly/seam/internal/control"
	"github.com/tailorly/seam/internal/core/config"
)

var (
	cfgPath string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "seam",
	Short: "Offline-resilient data-access layer for the tailoring app",
	Long: `Seam is the data-access layer behind the tailoring business app.
It decides per read/write whether to hit the network, retries transient
failures, serves cached snapshots offline and keeps the cache consistent
after mutations. The subcommands exercise the layer from the terminal.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
}

// setup loads .env and config, initializes logging and assembles the layer.
func setup() (*control.Layer, *config.AppConfig) {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		initLogger(slog.LevelInfo)
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slogLevel := slog.LevelInfo
	if isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}
	initLogger(slogLevel)

	layer, err := control.New(cfg)
	if err != nil {
		slog.Error("Failed to initialize data layer", "error", err)
		os.Exit(1)
	}
	return layer, cfg
}

func initLogger(level slog.Level) {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	})))
}
