package prompt

import (
	"encoding/json"
	"strings"
	"text/template"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/nulocaldev/deenquest/internal/utils"
)

const promptTemplateText = `You are a warm, knowledgeable Islamic companion. Follow these rules:
1. Speak naturally and personally; never lecture.
2. Ground advice in mainstream Islamic sources when you cite them, and say so when unsure.
3. Match the user's emotional state before offering guidance.
4. Keep replies concise: two short paragraphs at most.

[Conversation state]
Time: {{.Now}}
Emotional tone: {{.Conversation.EmotionalTone}}
Knowledge level: {{.Conversation.KnowledgeLevel}}
Engagement: {{.Conversation.EngagementLevel}}/10
{{- if .Conversation.Topics}}
Topics so far: {{join .Conversation.Topics ", "}}
{{- end}}
{{- if .Conversation.SpiritualThemes}}
Themes so far: {{join .Conversation.SpiritualThemes ", "}}
{{- end}}

{{- if .Memories}}

[Recalled from earlier conversations]
{{- range .Memories}}
- ({{.Role}}) {{.Content}}
{{- end}}
{{- end}}

{{- if .History}}

[Recent conversation]
{{- range .History}}
{{.Role}}: {{.Content}}
{{- end}}
{{- end}}

Respond with a single JSON object matching this schema, and nothing else:
{{.ReplySchema}}`

var promptTemplate = template.Must(template.New("companion").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(promptTemplateText))

// replySchemaJSON is the JSON schema of the structured reply, derived once
// from the output type and embedded into every system prompt.
var replySchemaJSON = mustReplySchema()

func mustReplySchema() string {
	schema, err := jsonschema.For[utils.CompanionOutput](nil)
	if err != nil {
		panic(err)
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	return string(raw)
}
