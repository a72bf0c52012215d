package kyc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	llm := &fakeLLM{out: "  A KYC record for John Doe.  "}
	s := &Summarizer{LLM: llm}

	got, err := s.Summarize(context.Background(), "Name: John Doe")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "A KYC record for John Doe." {
		t.Errorf("summary = %q", got)
	}
	if !strings.HasPrefix(llm.prompts[0], "Summarize the following KYC data:\n") {
		t.Errorf("prompt = %q", llm.prompts[0])
	}
	if !strings.Contains(llm.prompts[0], "Name: John Doe") {
		t.Errorf("prompt missing data: %q", llm.prompts[0])
	}
}

func TestSummarizeErrorPropagates(t *testing.T) {
	wantErr := errors.New("unreachable")
	s := &Summarizer{LLM: &fakeLLM{err: wantErr}}

	if _, err := s.Summarize(context.Background(), "x"); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestAssistantAnswer(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	for i, text := range []string{"Name: John Doe", "Address: 123 Main St"} {
		rec := KycRecord{
			ID:            "r" + string(rune('1'+i)),
			Username:      "alice",
			ExtractedData: text,
			CreatedAt:     time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	llm := &fakeLLM{out: "John Doe lives at 123 Main St."}
	a := &Assistant{LLM: llm, Repo: repo}

	got, err := a.Answer(ctx, "alice", "Where does the user live?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != "John Doe lives at 123 Main St." {
		t.Errorf("answer = %q", got)
	}

	prompt := llm.prompts[0]
	for _, want := range []string{"Name: John Doe", "Address: 123 Main St", "Where does the user live?"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q: %q", want, prompt)
		}
	}
}

func TestAssistantNoData(t *testing.T) {
	a := &Assistant{LLM: &fakeLLM{out: "unused"}, Repo: NewMemoryRepo()}

	if _, err := a.Answer(context.Background(), "nobody", "anything?"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAssistantEmptyQuery(t *testing.T) {
	a := &Assistant{LLM: &fakeLLM{}, Repo: NewMemoryRepo()}

	if _, err := a.Answer(context.Background(), "alice", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
