package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/keyscout/keyscout/pkg/config"
	"github.com/keyscout/keyscout/pkg/logging"
	"github.com/keyscout/keyscout/pkg/oracle"
	"github.com/keyscout/keyscout/pkg/runner"
	"github.com/keyscout/keyscout/pkg/search"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	var (
		configPath   = pflag.String("config", "config.yaml", "configuration file path")
		dir          = pflag.String("dir", "", "directory to scan (overrides config)")
		maxKeyLength = pflag.Int("max-key-length", 0, "candidate key size ceiling (overrides config)")
		strategies   = pflag.String("strategies", "", "comma-separated strategy order: fd, linear, smart, exhaustive (overrides config)")
		oracleCmd    = pflag.String("oracle", "", "functional-dependency oracle command (overrides config)")
		noProgress   = pflag.Bool("no-progress", false, "disable progress bars")
	)
	pflag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlagOverrides(cfg, *dir, *maxKeyLength, *strategies, *oracleCmd, *noProgress)

	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting keyscout",
		zap.String("version", Version),
		zap.String("dir", cfg.Dir),
		zap.Int("max_key_length", cfg.MaxKeyLength))

	// Resolve the FD oracle capability once; the strategy order is built
	// from it so the FD strategy is unreachable when the oracle is absent.
	var ora search.Oracle
	cmdOracle := oracle.NewCommandOracle(cfg.OracleCommand, logger)
	if cmdOracle.Available() {
		ora = cmdOracle
	} else {
		logger.Warn("functional-dependency oracle unavailable, fd strategy will be skipped",
			zap.String("command", cfg.OracleCommand))
	}

	r, err := runner.New(cfg, ora, logger)
	if err != nil {
		logger.Fatal("failed to initialize runner", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.ScanAndProcess(ctx); err != nil {
		logger.Error("scan aborted", zap.Error(err))
		os.Exit(1)
	}
}

// applyFlagOverrides lets CLI flags win over file and environment config.
func applyFlagOverrides(cfg *config.Config, dir string, maxKeyLength int, strategies, oracleCmd string, noProgress bool) {
	if dir != "" {
		cfg.Dir = dir
	}
	if maxKeyLength > 0 {
		cfg.MaxKeyLength = maxKeyLength
	}
	if strategies != "" {
		cfg.StrategiesStr = strategies
		cfg.Strategies = nil
		for _, token := range strings.Split(strategies, ",") {
			s, err := search.ParseStrategy(token)
			if err != nil {
				log.Fatalf("Invalid --strategies: %v", err)
			}
			cfg.Strategies = append(cfg.Strategies, s)
		}
	}
	if oracleCmd != "" {
		cfg.OracleCommand = oracleCmd
	}
	if noProgress {
		cfg.Progress = false
	}
}
