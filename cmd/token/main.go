package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"granteval-go/internal/auth"
)

func main() {
	app := &cli.App{
		Name:  "granteval-token",
		Usage: "mint a reviewer bearer token for the evaluation API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "reviewer",
				Aliases:  []string{"r"},
				Usage:    "reviewer id stored in the token subject",
				Required: true,
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Usage: "token lifetime",
				Value: 30 * 24 * time.Hour,
			},
			&cli.StringFlag{
				Name:    "secret",
				Usage:   "HS256 signing secret",
				EnvVars: []string{"AUTH_JWT_SECRET"},
			},
		},
		Before: func(*cli.Context) error {
			_ = godotenv.Load()
			return nil
		},
		Action: issueToken,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func issueToken(c *cli.Context) error {
	secret := c.String("secret")
	if secret == "" {
		secret = os.Getenv("AUTH_JWT_SECRET")
	}
	if secret == "" {
		return errors.New("missing signing secret: set AUTH_JWT_SECRET or pass --secret")
	}

	token, err := auth.NewTokens(secret).Issue(c.String("reviewer"), c.Duration("ttl"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
