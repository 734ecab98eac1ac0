package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/qabot/backend/config"
	"github.com/qabot/backend/internal/pkg/database"
	"github.com/qabot/backend/internal/repository"
	"github.com/qabot/backend/internal/service"
)

func main() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	defer klog.Flush()

	cfg := config.GetConfig()

	app := &cli.App{
		Name:  "chat",
		Usage: "Chat with the bot in the terminal and teach it unknown answers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-type",
				Usage:   "Database type (sqlite, mysql)",
				Value:   cfg.Database.Type,
				EnvVars: []string{"DB_TYPE"},
			},
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "Database DSN",
				Value:   cfg.Database.DSN,
				EnvVars: []string{"DB_DSN"},
			},
			&cli.StringFlag{
				Name:  "algorithm",
				Usage: "Matching algorithm (weighted, levenshtein, token-sort, jaro-winkler)",
				Value: cfg.Matcher.Algorithm,
			},
			&cli.IntFlag{
				Name:  "threshold",
				Usage: "Score a match must exceed to be answered",
				Value: cfg.Matcher.Threshold,
			},
			&cli.StringFlag{
				Name:  "v",
				Usage: "klog verbosity",
				Value: "0",
			},
		},
		Action: func(c *cli.Context) error {
			if err := klogFlags.Set("v", c.String("v")); err != nil {
				return fmt.Errorf("invalid verbosity: %w", err)
			}

			cfg.Database.Type = c.String("db-type")
			cfg.Database.DSN = c.String("dsn")
			cfg.Matcher.Algorithm = c.String("algorithm")
			cfg.Matcher.Threshold = c.Int("threshold")

			db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			bot := service.NewChatBotService(cfg, repository.NewQARepository(db), nil, nil)
			return newSession(bot, os.Stdin, os.Stdout).Run(c.Context)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
