package app

import (
	"errors"

	"github.com/ministore-next/internal/config"
	"github.com/ministore-next/internal/provider"
	"github.com/ministore-next/internal/router"
)

// BuildRunner wires the container and the HTTP service.
func BuildRunner(cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	engine := router.SetupRouter(cfg, container)
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	httpService := NewHTTPService(addr, engine)

	return NewRunner(httpService), nil
}

// Run is the application entry point.
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr)
	return RunWithOptions(runner, opts)
}
