// Package prompt assembles the companion system prompt from conversation
// state, recalled memories, and recent history.
package prompt

import (
	"bytes"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/nulocaldev/deenquest/internal/types"
)

// BuildContext contains all inputs for prompt assembly.
type BuildContext struct {
	Conversation types.ConversationContext
	Memories     []types.RecalledMessage
	History      []types.ChatMessage
	UserMessage  string
}

// Builder assembles layered prompts for the chat model.
type Builder struct {
	historyLimit int
	nowFunc      func() time.Time
}

// NewBuilder creates a prompt Builder.
func NewBuilder(historyLimit int) *Builder {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &Builder{
		historyLimit: historyLimit,
		nowFunc:      time.Now,
	}
}

// Build assembles the full prompt into genai contents: one system message
// carrying state, memories, history, and the reply schema, plus the user
// message.
func (b *Builder) Build(ctx BuildContext) ([]*genai.Content, error) {
	history := ctx.History
	if len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}

	data := struct {
		Conversation types.ConversationContext
		Memories     []types.RecalledMessage
		History      []types.ChatMessage
		Now          string
		ReplySchema  string
	}{
		Conversation: ctx.Conversation,
		Memories:     ctx.Memories,
		History:      history,
		Now:          b.nowFunc().Format(time.RFC3339),
		ReplySchema:  replySchemaJSON,
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	systemContent := genai.NewContentFromText(buf.String(), "system")
	userContent := genai.NewContentFromText(ctx.UserMessage, "user")
	return []*genai.Content{systemContent, userContent}, nil
}
