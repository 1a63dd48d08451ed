package main

import (
	"net/http"
	"os"

	"github.com/DrewAMSD/lifting-log/api"
	"github.com/DrewAMSD/lifting-log/internal/config"
	"github.com/DrewAMSD/lifting-log/session"
	"github.com/DrewAMSD/lifting-log/session/filestore"
	"github.com/rs/zerolog"
)

// app wires the client stack once per command invocation.
type app struct {
	cfg     config.Config
	client  *api.Client
	manager *session.Manager
	gate    *session.Gate
	log     zerolog.Logger
}

func newApp() (*app, error) {
	cfg := config.New()

	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	client, err := api.New(cfg.GetServerURL(),
		api.WithHTTPClient(&http.Client{Timeout: cfg.GetHTTPTimeout()}),
		api.WithLogger(log),
		api.WithGETRetries(cfg.GetGETRetries()),
	)
	if err != nil {
		return nil, err
	}

	store, err := filestore.New(cfg.GetStateFile())
	if err != nil {
		return nil, err
	}

	manager, err := session.NewManager(store, client,
		session.WithExpirySkew(cfg.GetExpirySkew()),
		session.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		client:  client,
		manager: manager,
		gate:    session.NewGate(manager),
		log:     log,
	}, nil
}
