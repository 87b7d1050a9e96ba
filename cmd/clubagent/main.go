// Copyright 2025 Campusworks
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
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	clubagent "github.com/campusworks/clubagent"
	"github.com/campusworks/clubagent/ai"
	"github.com/campusworks/clubagent/ingest"
	"github.com/campusworks/clubagent/retrieval"
)

func main() {
	app := &cli.App{
		Name:   "clubagent",
		Usage:  "Question-answering agent for university club events",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Interactive question-answering session",
				Action: chatCommand,
				Flags: append(append(modelFlags(), retrievalFlags()...),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the evidence SQLite database",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "transcript",
						Usage: "Path to the chat transcript directory (omit to disable history)",
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question and exit",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: append(append(modelFlags(), retrievalFlags()...),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the evidence SQLite database",
						Required: true,
					},
				),
			},
			{
				Name:   "ingest",
				Usage:  "Load an event dataset into the evidence database",
				Action: ingestCommand,
				Flags: append(modelFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the evidence SQLite database",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "dataset",
						Usage:    "Path to the event dataset JSON file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// modelFlags are the model-service flags shared by every command.
func modelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "chat-host",
			Usage: "Chat-completion service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (defaults to chat-host)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
	}
}

// retrievalFlags tune the hybrid search, for the commands that answer
// questions.
func retrievalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "top-k",
			Usage: "Hits each search path contributes before fusion",
			Value: retrieval.DefaultTopK,
		},
		&cli.IntFlag{
			Name:  "fused-limit",
			Usage: "Maximum fused documents handed to the answer model",
			Value: retrieval.DefaultFusedLimit,
		},
	}
}

func buildAIConfig(c *cli.Context) (*ai.Config, error) {
	embeddingHost := c.String("embedding-host")
	if embeddingHost == "" {
		embeddingHost = c.String("chat-host")
	}

	config := ai.NewConfig(
		ai.WithChatHost(c.String("chat-host")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithEmbeddingHost(embeddingHost),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func openAgent(c *cli.Context, transcriptPath string) (*clubagent.Agent, error) {
	config, err := buildAIConfig(c)
	if err != nil {
		return nil, err
	}

	opts := []clubagent.AgentOption{clubagent.WithAIConfig(config)}
	if c.IsSet("top-k") || c.IsSet("fused-limit") {
		opts = append(opts, clubagent.WithRetrievalOptions(
			retrieval.WithTopK(c.Int("top-k")),
			retrieval.WithFusedLimit(c.Int("fused-limit")),
		))
	}

	agent, err := clubagent.NewAgent(c.String("db"), transcriptPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open agent: %w", err)
	}
	return agent, nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	agent, err := openAgent(c, c.String("transcript"))
	if err != nil {
		return err
	}
	defer agent.Close()

	fmt.Println("--- Club Knowledge Search Agent ---")
	fmt.Println("Ask me questions about past club events. Type 'quit' or 'exit' to end.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			fmt.Println("\nAgent: Goodbye!")
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if lower := strings.ToLower(input); lower == "quit" || lower == "exit" {
			fmt.Println("Agent: Goodbye!")
			return nil
		}

		answer, err := agent.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Printf("Agent: %s\n", answer)
	}
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	agent, err := openAgent(c, "")
	if err != nil {
		return err
	}
	defer agent.Close()

	answer, err := agent.Ask(context.Background(), question)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	events, err := ingest.LoadEvents(c.String("dataset"))
	if err != nil {
		return err
	}

	agent, err := openAgent(c, "")
	if err != nil {
		return err
	}
	defer agent.Close()

	var opts []ingest.Option
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingest.WithPoolSize(size))
	}

	ingester, err := agent.NewIngestionPipeline(opts...)
	if err != nil {
		return err
	}
	defer ingester.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Dataset: %s\n", c.String("dataset"))

	if err := ingester.Run(ctx, events); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d events\n", len(events))
	return nil
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
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
