package assistant

import (
	"encoding/json"
	"strings"

	"github.com/doeshing/shai-term/internal/application/prompt"
	"github.com/doeshing/shai-term/internal/domain"
)

// harmReply requires every field to be present.
type harmReply struct {
	IsHarmful *bool   `json:"is_harmful"`
	Reason    *string `json:"reason"`
	Severity  *string `json:"severity"`
}

type fixReply struct {
	FixedCommand *string `json:"fixed_command"`
	Explanation  *string `json:"explanation"`
	Confidence   *string `json:"confidence"`
}

// decodeObject accepts a strict JSON reply or the first '{' to last '}'
// fragment embedded in surrounding text.
func decodeObject(raw string, v interface{}, complete func() bool) bool {
	if err := json.Unmarshal([]byte(raw), v); err == nil && complete() {
		return true
	}
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return false
	}
	return json.Unmarshal([]byte(raw[start:end+1]), v) == nil && complete()
}

func parseHarm(raw string) (domain.HarmResult, bool) {
	var reply harmReply
	ok := decodeObject(raw, &reply, func() bool {
		return reply.IsHarmful != nil && reply.Reason != nil && reply.Severity != nil
	})
	if !ok {
		return domain.HarmResult{}, false
	}
	return domain.HarmResult{
		IsHarmful: *reply.IsHarmful,
		Reason:    *reply.Reason,
		Severity:  domain.ParseSeverity(*reply.Severity),
	}, true
}

func parseFix(raw string) (domain.FixSuggestion, bool) {
	var reply fixReply
	ok := decodeObject(raw, &reply, func() bool {
		return reply.FixedCommand != nil && reply.Explanation != nil && reply.Confidence != nil
	})
	if !ok {
		return domain.FixSuggestion{}, false
	}
	return domain.FixSuggestion{
		FixedCommand: *reply.FixedCommand,
		Explanation:  *reply.Explanation,
		Confidence:   strings.ToLower(strings.TrimSpace(*reply.Confidence)),
	}, true
}

// parseSuggestion strips stray quoting and, when explanations are on,
// splits "completion|||explanation".
func parseSuggestion(raw string, withExplanation bool) domain.Suggestion {
	text := strings.TrimSpace(raw)
	var explanation *string

	if withExplanation {
		if completion, rest, found := strings.Cut(text, prompt.ExplanationSeparator); found {
			text = completion
			if e := strings.TrimSpace(rest); e != "" {
				explanation = &e
			}
		}
	}

	return domain.Suggestion{
		Completion:  cleanCompletion(text),
		Explanation: explanation,
	}
}

func cleanCompletion(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return strings.Trim(s, "`")
}
