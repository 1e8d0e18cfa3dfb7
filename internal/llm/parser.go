package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abr-dev/interview-coach/internal/core"
)

// parseFeedback extracts structured feedback from the model's output. The
// model is asked for a JSON object but does not always comply, so a few
// common quirks are handled:
//   - response wrapped in ``` or ```json fences
//   - malformed JSON, in which case the raw text becomes the feedback and the
//     text is scanned for a recommendation keyword
//   - a recommendation outside the allowed set, which normalizes to "same"
func parseFeedback(raw string) (*core.Feedback, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("feedback response is empty")
	}

	cleaned := stripMarkdownFence(raw)

	var payload struct {
		Feedback       string `json:"feedback"`
		Recommendation string `json:"recommendation"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		// Not JSON after all. Keep the text as feedback and scan it for a
		// recommendation keyword.
		return &core.Feedback{
			Text:           raw,
			Recommendation: scanRecommendation(raw),
		}, nil
	}

	if payload.Feedback == "" {
		payload.Feedback = "No feedback provided."
	}

	return &core.Feedback{
		Text:           payload.Feedback,
		Recommendation: core.NormalizeRecommendation(strings.ToLower(strings.TrimSpace(payload.Recommendation))),
	}, nil
}

// scanRecommendation looks for a recommendation keyword in free text.
// "easier" and "harder" are checked before "same" because "same" is a common
// English word and would otherwise shadow them.
func scanRecommendation(text string) core.Recommendation {
	lower := strings.ToLower(text)
	for _, rec := range []core.Recommendation{core.RecommendEasier, core.RecommendHarder, core.RecommendSame} {
		if strings.Contains(lower, string(rec)) {
			return rec
		}
	}
	return core.RecommendSame
}

// stripMarkdownFence removes a wrapping ``` or ```json code fence if the
// model included one.
func stripMarkdownFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx != -1 {
		// Drop the language tag on the opening fence line.
		firstLine := strings.TrimSpace(s[:idx])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{}[]") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
