// Package main provides the python-agent CLI: an interactive chat agent
// that can run Python scripts from disk or from trusted raw URLs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pspandana/python-agent/pkg/pythonagent"
)

// main is the program entry point.
func main() {
	cfg, err := parseCLIConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Verbose {
		cfg.Logger = pythonagent.NewWriterLogger(os.Stderr)
	}

	app, err := pythonagent.New(context.Background(), cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Ctrl-C ends the session with the goodbye line, not a stack trace.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println()
		fmt.Println("Agent: Goodbye!")
		os.Exit(0)
	}()

	if err := runREPL(app, replOptions{Verbose: cfg.Verbose, Logger: cfg.Logger}, os.Stdin, os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseCLIConfig loads .env, flags, and environment into runtime config.
// Precedence: defaults < config file < environment < flags.
func parseCLIConfig() (pythonagent.Config, error) {
	_ = godotenv.Load()

	cfg := pythonagent.DefaultConfig()

	configPath := flag.String("config", "", "Optional YAML configuration file")
	model := flag.String("model", "", "Override the chat model")
	verbose := flag.Bool("verbose", false, "Verbose debug logging to stderr")
	flag.Parse()

	if strings.TrimSpace(*configPath) != "" {
		loaded, err := pythonagent.LoadConfigFile(strings.TrimSpace(*configPath), cfg)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if baseURL := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if envModel := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); envModel != "" {
		cfg.Model = envModel
	}
	if strings.TrimSpace(*model) != "" {
		cfg.Model = strings.TrimSpace(*model)
	}
	cfg.Verbose = *verbose

	if cfg.APIKey == "" {
		return cfg, errors.New("OPENAI_API_KEY is not set. Please check your .env file")
	}
	return cfg, nil
}
