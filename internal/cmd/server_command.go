package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/signalytics/pokedex/internal/api"
	"github.com/signalytics/pokedex/internal/auth"
	"github.com/signalytics/pokedex/internal/config"
	"github.com/signalytics/pokedex/internal/db"
	"github.com/signalytics/pokedex/internal/server"
)

const shutdownGracePeriod = 10 * time.Second

// ServerCommand runs the HTTP API server.
type ServerCommand struct {
	UI  cli.Ui
	Log hclog.Logger

	flagConfig string
	flagAddr   string
}

func (c *ServerCommand) Synopsis() string {
	return "Run the pokedex API server"
}

func (c *ServerCommand) Help() string {
	return `Usage: pokedex server [options]

  Run the pokedex API server.

Options:

  -config=<path>  Path to an HCL config file. Without one the server runs
                  zero-config against a local SQLite database.
  -addr=<addr>    Listen address, overriding the config file.
`
}

func (c *ServerCommand) Run(args []string) int {
	f := flag.NewFlagSet("server", flag.ContinueOnError)
	f.StringVar(&c.flagConfig, "config", "", "path to config file")
	f.StringVar(&c.flagAddr, "addr", "", "listen address")
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading config: %v", err))
		return 1
	}
	if c.flagAddr != "" {
		cfg.Server.Addr = c.flagAddr
	}
	if err := cfg.Validate(); err != nil {
		c.UI.Error(fmt.Sprintf("invalid config: %v", err))
		return 1
	}

	log := c.Log
	if log == nil {
		log = hclog.New(&hclog.LoggerOptions{Name: "pokedex"})
	}

	database, err := db.Connect(cfg.Database, log)
	if err != nil {
		log.Error("error connecting to database", "error", err)
		return 1
	}
	if err := db.Migrate(database); err != nil {
		log.Error("error migrating database", "error", err)
		return 1
	}

	srv := server.Server{
		Config:   cfg,
		DB:       database,
		Verifier: auth.NewJWTVerifier(cfg.Auth.TokenSecret),
		Logger:   log,
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Error("error closing server resources", "error", err)
		}
	}()

	r := mux.NewRouter()
	api.RegisterRoutes(r, srv)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	log.Info("pokedex server listening",
		"addr", cfg.Server.Addr,
		"database", cfg.Database.Driver,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			return 1
		}
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error("error during shutdown", "error", err)
			return 1
		}
	}

	return 0
}
