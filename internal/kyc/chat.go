package kyc

import (
	"context"
	"strings"

	"kyc-backend/internal/llm"
)

// Assistant answers free-form questions about a user's stored KYC data. It is
// stateless: conversation history, if any, lives with the client and is not
// kept server-side.
type Assistant struct {
	LLM  llm.Client
	Repo Repo
}

// Answer fetches every extracted text for the user, builds a grounding prompt
// and returns the model's reply.
func (a *Assistant) Answer(ctx context.Context, username, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrInvalidInput
	}

	records, err := a.Repo.ListByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", ErrNotFound
	}

	texts := make([]string, 0, len(records))
	for _, rec := range records {
		texts = append(texts, rec.ExtractedData)
	}

	out, err := a.LLM.Generate(ctx, buildChatPrompt(texts, query))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
