package cmd

import (
	"flag"
	"fmt"
	"time"

	"github.com/mitchellh/cli"

	"github.com/signalytics/pokedex/internal/auth"
	"github.com/signalytics/pokedex/internal/config"
)

// TokenCommand mints a signed bearer token for a user and role. Intended for
// operators and local development.
type TokenCommand struct {
	UI cli.Ui

	flagConfig string
	flagUser   string
	flagRole   string
	flagTTL    time.Duration
}

func (c *TokenCommand) Synopsis() string {
	return "Mint a bearer token for a user and role"
}

func (c *TokenCommand) Help() string {
	return `Usage: pokedex token -user=<id> [options]

  Mint a signed bearer token. The signing secret is read from the config
  file or the TOKEN_SECRET environment variable.

Options:

  -config=<path>  Path to an HCL config file.
  -user=<id>      User identifier to embed in the token (required).
  -role=<role>    Role to embed in the token (default "trainer").
  -ttl=<dur>      Token lifetime (default 24h).
`
}

func (c *TokenCommand) Run(args []string) int {
	f := flag.NewFlagSet("token", flag.ContinueOnError)
	f.StringVar(&c.flagConfig, "config", "", "path to config file")
	f.StringVar(&c.flagUser, "user", "", "user identifier")
	f.StringVar(&c.flagRole, "role", "trainer", "role")
	f.DurationVar(&c.flagTTL, "ttl", auth.DefaultTokenTTL, "token lifetime")
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagUser == "" {
		c.UI.Error("the -user flag is required")
		return 1
	}

	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading config: %v", err))
		return 1
	}
	if cfg.Auth.TokenSecret == "" {
		c.UI.Error("no token secret configured (set TOKEN_SECRET)")
		return 1
	}

	verifier := auth.NewJWTVerifier(cfg.Auth.TokenSecret)
	token, err := verifier.Sign(auth.Identity{
		UserID: c.flagUser,
		Role:   c.flagRole,
	}, c.flagTTL)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error signing token: %v", err))
		return 1
	}

	c.UI.Output(token)
	return 0
}
