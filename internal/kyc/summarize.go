package kyc

import (
	"context"
	"strings"

	"kyc-backend/internal/llm"
)

// Summarizer condenses extracted KYC data into a short narrative for review
// screens. The summary is never persisted; it is recomputed per request.
type Summarizer struct {
	LLM llm.Client
}

// Summarize runs a single free-text model call. Model failures propagate to
// the caller, which renders a failure notice instead of crashing.
func (s *Summarizer) Summarize(ctx context.Context, extractedData string) (string, error) {
	out, err := s.LLM.Generate(ctx, buildSummarizePrompt(extractedData))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
