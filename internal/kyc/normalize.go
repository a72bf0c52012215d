package kyc

import (
	"context"
	"encoding/json"
	"strings"

	"kyc-backend/internal/llm"
	"kyc-backend/internal/shared/telemetry"
)

// Normalizer converts raw extracted text into a structured Record through a
// single language-model call. It is a pure function of the raw text given a
// deterministic model: no retries, no state.
type Normalizer struct {
	LLM llm.Client
}

// Normalize sends the raw text to the model and parses the response. A model
// response that is not valid JSON yields the Malformed variant carrying the
// raw output; a failed model call propagates as an error.
func (n *Normalizer) Normalize(ctx context.Context, rawText string) (Record, error) {
	out, err := n.LLM.Generate(ctx, buildExtractPrompt(rawText))
	if err != nil {
		return Record{}, err
	}

	cleaned := stripFences(out)

	var fields Fields
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		telemetry.Warn("model output not parseable as JSON", map[string]any{
			"outputLen": len(out),
		})
		return Record{Malformed: &MalformedOutput{RawOutput: out}}, nil
	}
	return Record{Fields: &fields}, nil
}

// stripFences removes residual markdown code-fence markers the model may emit
// despite the prompt forbidding them.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
