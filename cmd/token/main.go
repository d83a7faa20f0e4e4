package main

import (
	"fmt"
	"log"
	"os"

	"github.com/getAlby/communityhub.go/lib/tokens"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// JWT_SECRET may come from .env
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("Failed to load .env file")
	}

	app := &cli.App{
		Name:  "token",
		Usage: "mint an access token for an address",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "address the token authenticates",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "secret",
				Usage:   "JWT signing secret",
				EnvVars: []string{"JWT_SECRET"},
			},
			&cli.IntFlag{
				Name:    "expiry",
				Usage:   "token lifetime in seconds",
				EnvVars: []string{"JWT_ACCESS_EXPIRY"},
				Value:   172800,
			},
		},
		Action: func(ctx *cli.Context) error {
			secret := ctx.String("secret")
			if secret == "" {
				return cli.Exit("a JWT secret is required, use --secret or JWT_SECRET", 1)
			}
			token, err := tokens.GenerateAccessToken([]byte(secret), ctx.Int("expiry"), ctx.String("address"))
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
