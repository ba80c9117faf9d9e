// Package main provides the tripflow interactive chat CLI.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/tripflow/tripflow/internal/adapters/llm/openai"
	"github.com/tripflow/tripflow/internal/adapters/search"
	"github.com/tripflow/tripflow/internal/config"
	"github.com/tripflow/tripflow/pkg/tripflow"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("tripflow %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	searcher := search.NewClient(search.Config{
		APIKey:   cfg.Search.APIKey,
		BaseURL:  cfg.Search.BaseURL,
		Country:  cfg.Search.Country,
		Language: cfg.Search.Language,
		Currency: cfg.Search.Currency,
	}, log)
	defer searcher.Close()

	reasoner := openai.NewReasoner(openai.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		Temperature: float32(cfg.OpenAI.Temperature),
	}, log)

	rt := tripflow.NewRuntime(reasoner, searcher,
		tripflow.WithLogger(log),
		tripflow.WithMaxIterations(cfg.Agent.MaxIterations))
	defer rt.Close()

	threadID := tripflow.NewThreadID()
	fmt.Printf("tripflow travel assistant (thread %s)\n", threadID)
	fmt.Println("Type a message, or 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		res, err := rt.Chat(context.Background(), threadID, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(res.Response)
	}
	return scanner.Err()
}
