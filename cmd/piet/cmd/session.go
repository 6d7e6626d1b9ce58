package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/piet/pkg/config"
	"github.com/go-drift/piet/pkg/logging"
	"github.com/go-drift/piet/pkg/metrics"
	"github.com/go-drift/piet/pkg/piet"
	piettest "github.com/go-drift/piet/pkg/testing"
)

// session is one command run: the host configuration, fake host
// providers, a logger and a manager wired to them.
type session struct {
	cfg      *config.HostConfig
	env      *piettest.Env
	log      *logging.Logger
	registry *prometheus.Registry
	manager  *piet.Manager
}

// newSession loads the host configuration, lets override adjust it and
// builds the manager.
func newSession(flags *rootFlags, logOut io.Writer, override func(*config.HostConfig) error) (*session, error) {
	cfg, err := config.LoadOptional(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	if override != nil {
		if err := override(cfg); err != nil {
			return nil, err
		}
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}

	log, err := logging.New(cfg.LoggingOptions(logOut))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	env := piettest.NewEnv()
	env.Assets.Sync = true
	env.Assets.DarkTheme = cfg.Assets.DarkTheme
	env.Assets.RtL = cfg.Assets.RtL
	env.Assets.CornerRadius = cfg.Assets.CornerRadiusDp
	for _, name := range cfg.Assets.Typefaces {
		env.Assets.AddTypeface(name)
	}
	env.FrameWidthPx = cfg.Display.WidthPx
	env.Density = cfg.Display.Density
	env.Orientation = cfg.Orientation()
	env.Behavior = cfg.Behavior()

	registry := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(registry)
	if err != nil {
		return nil, err
	}

	params := cfg.Parameters(log, rec)
	params.Providers = env.Providers()
	params.Registry = env.Registry

	log.WithFields(map[string]any{
		"config":   flags.configPath,
		"widthPx":  cfg.Display.WidthPx,
		"density":  cfg.Display.Density,
		"behavior": cfg.Behavior().String(),
	}).Debug("session configured")

	return &session{
		cfg:      cfg,
		env:      env,
		log:      log,
		registry: registry,
		manager:  piet.NewManager(params),
	}, nil
}
