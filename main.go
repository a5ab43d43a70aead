package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/page-visuals/internal/resolve"
	"github.com/dtnitsch/page-visuals/pkg/help"
)

func main() {
	app := &cli.App{
		Name:  "page-visuals",
		Usage: "Discover and resolve site icons and social preview images",
		Commands: []*cli.Command{
			{
				Name:   "resolve",
				Usage:  "Resolve icons and preview images for a list of URLs",
				Action: resolve.ResolveAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "urls",
						Usage: "Comma-separated list of page URLs",
					},
					&cli.StringFlag{
						Name:  "assets",
						Usage: "Comma-separated asset kinds to resolve: icon, social",
						Value: "icon,social",
					},
					&cli.IntFlag{
						Name:  "size",
						Usage: "Preferred icon size in pixels (used by the external fallback)",
						Value: 64,
					},
					&cli.StringFlag{
						Name:  "default-image",
						Usage: "Caller-supplied default image URL used when discovery fails",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Directory to save resolved asset bytes into (skipped when empty)",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Run summary output format: yaml or json",
						Value: "yaml",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to the YAML config file",
						Value: "config.yaml",
					},
					&cli.IntFlag{
						Name:  "timeout-ms",
						Usage: "Per-request deadline in milliseconds (overrides config)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent workers (overrides config)",
					},
					&cli.BoolFlag{
						Name:  "no-fallback-api",
						Usage: "Disable the external favicon fallback service",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "Skip recording results in the history database",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Only log errors",
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a YAML quick-start reference",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
			{
				Name:   "history",
				Usage:  "Show recent resolution history",
				Action: resolve.HistoryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of rows to show",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "stats",
						Usage: "Show aggregate counts per source tag instead of rows",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
