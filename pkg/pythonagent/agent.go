// Package pythonagent implements a conversational CLI agent that relays
// free text to an OpenAI-compatible chat-completions API and executes
// Python scripts (local files or trusted raw URLs) as isolated subprocesses.
package pythonagent

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// App holds agent runtime state: the conversation history, the chat
// client, and the two script runners.
type App struct {
	config  Config
	client  openai.Client
	history []Message
	local   *localScriptRunner
	remote  *remoteScriptRunner
	ctx     context.Context
	logger  Logger
	verbose bool
}

// New initializes an App with the provided context and config.
func New(ctx context.Context, cfg Config) (*App, error) {
	cfg = normalizeConfig(cfg)
	if cfg.APIKey == "" {
		return nil, errors.New("APIKey is not set")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	debugf(cfg.Verbose, cfg.Logger, "[verbose] app init: model=%s base_url=%s trusted_host=%s chat_timeout=%s script_timeout=%s",
		cfg.Model, cfg.BaseURL, cfg.TrustedHost, cfg.ChatTimeout, cfg.ScriptTimeout)

	executor := &interpreterExecutor{
		interpreter: cfg.Interpreter,
		timeout:     cfg.ScriptTimeout,
		verbose:     cfg.Verbose,
		logger:      cfg.Logger,
	}

	return &App{
		config:  cfg,
		client:  newOpenAIClient(cfg),
		history: []Message{{Role: RoleSystem, Content: cfg.SystemPrompt}},
		local: &localScriptRunner{
			exec:    executor,
			verbose: cfg.Verbose,
			logger:  cfg.Logger,
		},
		remote: &remoteScriptRunner{
			exec:        executor,
			client:      &http.Client{Timeout: cfg.FetchTimeout},
			trustedHost: cfg.TrustedHost,
			verbose:     cfg.Verbose,
			logger:      cfg.Logger,
		},
		ctx:     ctx,
		logger:  cfg.Logger,
		verbose: cfg.Verbose,
	}, nil
}

// newOpenAIClient builds a client with configuration from Config.
func newOpenAIClient(cfg Config) openai.Client {
	opts := []option.RequestOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return openai.NewClient(opts...)
}
