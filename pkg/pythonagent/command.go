// Input classification and routing for one line of user input.
package pythonagent

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	verbRunLocal  = "run_local"
	verbRunGithub = "run_github"

	usageRunLocal  = "Usage: run_local <path>"
	usageRunGithub = "Usage: run_github <raw_github_url>"
)

// DispatchResult is the outcome of routing one line of input.
type DispatchResult struct {
	// Reply is the text to show the user. Empty when Quit is set.
	Reply string
	// Quit reports that the user asked to end the session.
	Quit bool
}

// Dispatch classifies one line of input and routes it to the chat path or
// one of the script runners. Classification works on the trimmed line; the
// chat path receives the raw untrimmed input. Dispatch never returns an
// error: every recoverable failure is rendered into Reply.
func (a *App) Dispatch(input string) DispatchResult {
	trimmed := strings.TrimSpace(input)

	switch strings.ToLower(trimmed) {
	case "quit", "exit":
		return DispatchResult{Quit: true}
	}

	if arg, ok := commandArg(trimmed, verbRunLocal); ok {
		if arg == "" {
			return DispatchResult{Reply: usageRunLocal}
		}
		debugf(a.verbose, a.logger, "[verbose] dispatch: run_local path=%s", arg)
		return DispatchResult{Reply: a.local.Run(a.ctx, arg)}
	}
	if arg, ok := commandArg(trimmed, verbRunGithub); ok {
		if arg == "" {
			return DispatchResult{Reply: usageRunGithub}
		}
		debugf(a.verbose, a.logger, "[verbose] dispatch: run_github url=%s", arg)
		return DispatchResult{Reply: a.remote.Run(a.ctx, arg)}
	}

	return DispatchResult{Reply: a.chatReply(input)}
}

// commandArg matches a command verb case-insensitively and returns the
// trimmed argument after it. A bare verb matches with an empty argument so
// the caller can report usage instead of slicing past the end of the line.
func commandArg(line, verb string) (string, bool) {
	if len(line) < len(verb) || !strings.EqualFold(line[:len(verb)], verb) {
		return "", false
	}
	rest := line[len(verb):]
	if rest != "" && !strings.HasPrefix(rest, " ") {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// chatReply runs the chat path and renders failures as user-visible text.
func (a *App) chatReply(input string) string {
	reply, err := a.Chat(input)
	if err == nil {
		return reply
	}
	switch {
	case errors.Is(err, errEmptyReply):
		return "Error: the model returned an empty reply."
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Error: the chat request timed out after %s.", a.config.ChatTimeout)
	default:
		return fmt.Sprintf("Error talking to the model: %v", err)
	}
}
