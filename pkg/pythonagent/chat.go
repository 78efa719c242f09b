// Conversation state and the chat-completion path.
package pythonagent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
)

// Role is the role for a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged conversation entry.
type Message struct {
	Role    Role
	Content string
}

// errEmptyReply marks a completion that succeeded but carried no text.
var errEmptyReply = errors.New("empty assistant reply")

// History returns a copy of the conversation history. The first entry is
// always the system message set at construction.
func (a *App) History() []Message {
	out := make([]Message, len(a.history))
	copy(out, a.history)
	return out
}

// Chat sends one user message with full conversation context and returns
// the assistant reply. The append is transactional: the user message is
// staged, and the user/assistant pair is committed together only when the
// request succeeds with non-empty content. On any failure the history is
// left exactly as it was before the turn.
func (a *App) Chat(input string) (string, error) {
	staged := append(a.history[:len(a.history):len(a.history)], Message{Role: RoleUser, Content: input})

	reply, err := a.complete(staged)
	if err != nil {
		debugf(a.verbose, a.logger, "[verbose] chat: turn discarded: %v", err)
		return "", err
	}

	a.history = append(staged, Message{Role: RoleAssistant, Content: reply})
	debugf(a.verbose, a.logger, "[verbose] chat: committed turn, history=%d", len(a.history))
	return reply, nil
}

// complete performs one chat-completion request under the chat timeout.
func (a *App) complete(messages []Message) (string, error) {
	params, err := toOpenAIParams(messages)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(a.ctx, a.config.ChatTimeout)
	defer cancel()

	debugf(a.verbose, a.logger, "[verbose] chat: sending request with %d messages", len(messages))
	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(a.config.Model),
		Messages:    params,
		MaxTokens:   openai.Int(a.config.MaxTokens),
		Temperature: openai.Float(a.config.Temperature),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("chat request timed out after %s: %w", a.config.ChatTimeout, context.DeadlineExceeded)
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion: empty choices")
	}

	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", errEmptyReply
	}
	return content, nil
}

// toOpenAIParams converts conversation entries into request params.
func toOpenAIParams(messages []Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			return nil, fmt.Errorf("unsupported message role: %q", m.Role)
		}
	}
	return out, nil
}
