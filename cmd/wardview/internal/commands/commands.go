package commands

import (
	"context"
	"fmt"

	"github.com/clinops/wardview/internal/config"
	"github.com/clinops/wardview/internal/credstore"
	"github.com/clinops/wardview/internal/identity"
	"github.com/clinops/wardview/internal/logger"
	"github.com/clinops/wardview/internal/session"
	"github.com/clinops/wardview/internal/transport"
)

type Globals struct {
	Config      string
	IdentityURL string
	StorageDir  string
	Debug       bool
	Version     string
}

// app bundles the wired components every command needs.
type app struct {
	cfg     config.Config
	manager *session.Manager
}

// newApp wires the stack bottom-up: config, credential store, HTTP
// transport, identity client, session manager. The session is
// initialized before the command runs so every command starts settled.
func newApp(ctx context.Context, globals *Globals) (*app, error) {
	log := logger.Setup(globals.Debug)

	cfg, err := config.Load(globals.Config)
	if err != nil {
		return nil, err
	}
	if globals.IdentityURL != "" {
		cfg.IdentityURL = globals.IdentityURL
	}
	if globals.StorageDir != "" {
		cfg.StorageDir = globals.StorageDir
	}

	medium, err := credstore.NewFileMedium(cfg.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	store := credstore.New(medium)

	httpClient, bearer := transport.NewClient(transport.Config{
		Timeout:    cfg.Timeout(),
		MaxRetries: cfg.MaxRetries,
	}, log)
	gateway := identity.NewClient(cfg.IdentityURL, httpClient)

	manager := session.NewManager(gateway, store, bearer)
	if err := manager.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	return &app{cfg: cfg, manager: manager}, nil
}
