// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "lostfound",
		Usage: "Match lost item reports against found ones",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				EnvVars: []string{envPrefix + "_DB"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file with matching thresholds",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "Print the feature record derived from text",
				ArgsUsage: "<text>",
				Action:    extractCommand,
			},
			{
				Name:      "mask",
				Usage:     "Mask contact details in text",
				ArgsUsage: "<text>",
				Action:    maskCommand,
			},
			{
				Name:   "submit",
				Usage:  "Store a new lost or found report",
				Action: submitCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "kind",
						Aliases:  []string{"k"},
						Usage:    "Report kind (lost or found)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Short title of the item",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Free text description",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Where the item was lost or found",
					},
					&cli.StringFlag{
						Name:  "time",
						Usage: "When the item was lost or found (ISO-8601)",
					},
				},
			},
			{
				Name:   "matches",
				Usage:  "Rank the opposite kind reports for a report",
				Action: matchesCommand,
				Flags:  []cli.Flag{idFlag()},
			},
			{
				Name:   "answer",
				Usage:  "Answer a clarifying question for a report",
				Action: answerCommand,
				Flags: []cli.Flag{
					idFlag(),
					&cli.StringFlag{
						Name:     "key",
						Usage:    "Field being answered (brand, colors, item_type, unique_marks)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "answer",
						Aliases:  []string{"a"},
						Usage:    "The reporter's answer",
						Required: true,
					},
				},
			},
			{
				Name:   "show",
				Usage:  "Print a report with contact details masked",
				Action: showCommand,
				Flags:  []cli.Flag{idFlag()},
			},
			{
				Name:   "rederive",
				Usage:  "Re-derive the feature records of all stored reports",
				Action: rederiveCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of reports to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N reports",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Count the reports that would change without writing them",
					},
				},
			},
			{
				Name:   "config",
				Usage:  "Print the effective matching thresholds",
				Action: configCommand,
			},
		},
	}
}

func idFlag() cli.Flag {
	return &cli.Uint64Flag{
		Name:     "id",
		Usage:    "Report ID",
		Required: true,
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
