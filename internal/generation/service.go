// Package generation calls the chat model and supplies static fallback
// replies when it fails.
package generation

import (
	"context"
	"fmt"

	"google.golang.org/adk/model"

	"github.com/nulocaldev/deenquest/internal/prompt"
	"github.com/nulocaldev/deenquest/internal/types"
	"github.com/nulocaldev/deenquest/internal/utils"
)

// Service produces companion replies. The unlock pipeline never depends on
// it: a generation failure degrades to a fallback reply and nothing else.
type Service struct {
	llm     model.LLM
	builder *prompt.Builder
}

// NewService returns a generation service. A nil llm is allowed; every call
// then reports an error and the caller falls back.
func NewService(llm model.LLM, builder *prompt.Builder) *Service {
	return &Service{llm: llm, builder: builder}
}

// Reply generates a structured companion reply for the assembled context.
func (s *Service) Reply(ctx context.Context, in prompt.BuildContext) (utils.CompanionOutput, error) {
	if s == nil || s.llm == nil {
		return utils.CompanionOutput{}, fmt.Errorf("chat model not configured")
	}

	contents, err := s.builder.Build(in)
	if err != nil {
		return utils.CompanionOutput{}, err
	}

	req := &model.LLMRequest{Contents: contents}
	seq := s.llm.GenerateContent(ctx, req, false)

	var resp *model.LLMResponse
	var genErr error
	seq(func(r *model.LLMResponse, e error) bool {
		resp = r
		genErr = e
		return false
	})
	if genErr != nil {
		return utils.CompanionOutput{}, genErr
	}
	if resp == nil {
		return utils.CompanionOutput{}, fmt.Errorf("empty model response")
	}

	return utils.ParseCompanionOutput(utils.ExtractContentText(resp.Content))
}

// fallbackReplies keeps one static reply per emotional tone plus a default.
var fallbackReplies = map[string]string{
	types.ToneTroubled:  "I hear that things are heavy right now. I'm having a little trouble finding my words, but I'm still here with you. Could you tell me a bit more?",
	types.ToneSeeking:   "That's a meaningful question, and I want to give it the attention it deserves. Could you ask it once more, perhaps in a different way?",
	types.ToneGrateful:  "Alhamdulillah, it's beautiful to hear gratitude in your words. I lost my train of thought; what were you most thankful for just now?",
	types.ToneReflective: "You've given me something to sit with. I couldn't quite form my reply; would you share a little more of what's on your mind?",
}

const defaultFallbackReply = "I'm having trouble putting my response together right now. Could you rephrase that for me?"

// FallbackReply returns the static fallback for the given emotional tone.
func FallbackReply(tone string) string {
	if reply, ok := fallbackReplies[tone]; ok {
		return reply
	}
	return defaultFallbackReply
}
