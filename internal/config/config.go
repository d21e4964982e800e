// Package config loads and validates the service configuration from an HCL
// file, with environment-variable overrides for secrets.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config is the top-level service configuration.
type Config struct {
	Server   *Server   `hcl:"server,block"`
	Database *Database `hcl:"database,block"`
	Auth     *Auth     `hcl:"auth,block"`
}

// Server configures the HTTP listener.
type Server struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `hcl:"addr,optional"`

	// MaxPageSize caps the pageSize accepted by list-paginated requests.
	MaxPageSize int `hcl:"max_page_size,optional"`
}

// Database configures the document store.
type Database struct {
	// Driver selects the store backend: "postgres" or "sqlite".
	Driver string `hcl:"driver,optional"`

	// DSN is the PostgreSQL connection string. The DATABASE_URL environment
	// variable overrides it.
	DSN string `hcl:"dsn,optional"`

	// Path is the SQLite database file path.
	Path string `hcl:"path,optional"`

	MaxIdleConns int `hcl:"max_idle_conns,optional"`
	MaxOpenConns int `hcl:"max_open_conns,optional"`
}

// Auth configures the authentication gate.
type Auth struct {
	// TokenSecret signs and verifies bearer tokens. The TOKEN_SECRET
	// environment variable overrides it; never commit real secrets to
	// config files.
	TokenSecret string `hcl:"token_secret,optional"`

	// Roles are the roles allowed to use the resource API.
	Roles []string `hcl:"roles,optional"`

	// AdminRoles additionally grant unrestricted access to owner-scoped
	// documents.
	AdminRoles []string `hcl:"admin_roles,optional"`
}

// Default returns the zero-config configuration: SQLite store in the working
// directory, listener on :8080.
func Default() *Config {
	return &Config{
		Server: &Server{
			Addr:        ":8080",
			MaxPageSize: 100,
		},
		Database: &Database{
			Driver:       "sqlite",
			Path:         "pokedex.db",
			MaxIdleConns: 10,
			MaxOpenConns: 25,
		},
		Auth: &Auth{
			Roles:      []string{"trainer", "admin"},
			AdminRoles: []string{"admin"},
		},
	}
}

// Load parses the HCL config file at path, fills unset values with defaults,
// and applies environment overrides. An empty path returns the defaults
// (plus overrides).
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
			return nil, fmt.Errorf("error decoding config file: %w", err)
		}
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Server == nil {
		c.Server = def.Server
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.MaxPageSize == 0 {
		c.Server.MaxPageSize = def.Server.MaxPageSize
	}
	if c.Database == nil {
		c.Database = def.Database
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		c.Database.Path = def.Database.Path
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = def.Database.MaxIdleConns
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = def.Database.MaxOpenConns
	}
	if c.Auth == nil {
		c.Auth = def.Auth
	}
	if len(c.Auth.Roles) == 0 {
		c.Auth.Roles = def.Auth.Roles
	}
	if len(c.Auth.AdminRoles) == 0 {
		c.Auth.AdminRoles = def.Auth.AdminRoles
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		c.Auth.TokenSecret = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.Driver = "postgres"
		c.Database.DSN = v
	}
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.Database.Driver {
	case "postgres":
		if c.Database.DSN == "" {
			result = multierror.Append(result,
				fmt.Errorf("database: dsn is required for the postgres driver"))
		}
	case "sqlite":
		if c.Database.Path == "" {
			result = multierror.Append(result,
				fmt.Errorf("database: path is required for the sqlite driver"))
		}
	default:
		result = multierror.Append(result,
			fmt.Errorf("database: unsupported driver %q", c.Database.Driver))
	}

	if c.Auth.TokenSecret == "" {
		result = multierror.Append(result,
			fmt.Errorf("auth: token_secret is required (set TOKEN_SECRET)"))
	}

	if c.Server.MaxPageSize < 1 {
		result = multierror.Append(result,
			fmt.Errorf("server: max_page_size must be positive"))
	}

	return result.ErrorOrNil()
}
