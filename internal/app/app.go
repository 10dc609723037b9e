// Package app wires warp's components together: config, logging, the
// lightning-cli gateway, the state store, the background pollers, and the UI.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/curly60e/warp/internal/command"
	"github.com/curly60e/warp/internal/config"
	"github.com/curly60e/warp/internal/gateway"
	"github.com/curly60e/warp/internal/logging"
	"github.com/curly60e/warp/internal/prefs"
	"github.com/curly60e/warp/internal/state"
	"github.com/curly60e/warp/internal/ui"
)

// Options configure the warp application. Non-zero values override the
// config file.
type Options struct {
	ConfigPath   string
	PrefsPath    string // empty uses default ~/.config/warp/prefs.toml
	Network      string
	LightningDir string
	CLIPath      string
	PollEvery    int // seconds; zero uses the configured interval
	LogFile      string
	Debug        bool
}

// Run boots the warp TUI until the context is cancelled or the operator
// quits. Both pollers are stopped before it returns.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	logger, err := logging.New(cfg.LogFile, opts.Debug)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	client := gateway.NewClient(gateway.Options{
		Binary:       cfg.CLIPath,
		Network:      cfg.Network,
		LightningDir: cfg.LightningDir,
		Logger:       logger.Named("gateway"),
	})

	store := state.NewStore()
	dispatcher := command.NewDispatcher(client, store, logger.Named("command"))

	// Quit flows through this cancel: the UI calls it, the pollers watch it.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pollers := NewPollers(client, store, cfg.PollInterval, logger.Named("poll"))
	group := pollers.Start(ctx)

	logger.Info("warp starting",
		zap.String("network", cfg.Network),
		zap.Duration("poll_interval", cfg.PollInterval))
	uiErr := ui.Run(ui.Options{
		Context:    ctx,
		Cancel:     cancel,
		Store:      store,
		Dispatcher: dispatcher,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		Logger:     logger.Named("ui"),
	})

	cancel()
	_ = group.Wait()
	return uiErr
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.Network != "" {
		cfg.Network = opts.Network
	}
	if opts.LightningDir != "" {
		cfg.LightningDir = opts.LightningDir
	}
	if opts.CLIPath != "" {
		cfg.CLIPath = opts.CLIPath
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}
}
