package kyc

import (
	"encoding/json"
	"time"
)

// Document-type labels persisted on KycRecord rows. Plain-text uploads get
// their own label rather than being folded into "image" or "pdf".
const (
	LabelImage = "image"
	LabelPDF   = "pdf"
	LabelText  = "text"
)

// Fields is the structured output of field normalization: the four keys the
// model is instructed to return. Missing keys are left empty rather than
// rejected; key-level validation is a display concern.
type Fields struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	DOB         string `json:"dob"`
	PhoneNumber string `json:"phone_number"`
}

// MalformedOutput carries the raw model response when it could not be parsed
// as JSON. The raw output is kept for audit, never discarded.
type MalformedOutput struct {
	RawOutput string `json:"raw_output"`
}

// Record is the result of normalizing raw extracted text. Exactly one of
// Fields or Malformed is set.
type Record struct {
	Fields    *Fields
	Malformed *MalformedOutput
}

// OK reports whether the record holds structured fields.
func (r Record) OK() bool {
	return r.Fields != nil
}

// MarshalJSON serializes the success variant as the four-key object and the
// failure variant as {"error":"invalid model output","raw_output":...}.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Fields != nil {
		return json.Marshal(r.Fields)
	}
	raw := ""
	if r.Malformed != nil {
		raw = r.Malformed.RawOutput
	}
	return json.Marshal(struct {
		Error     string `json:"error"`
		RawOutput string `json:"raw_output"`
	}{
		Error:     "invalid model output",
		RawOutput: raw,
	})
}

// KycRecord is one persisted extraction outcome. Rows are append-only:
// reprocessing a document inserts a new row rather than updating an old one.
type KycRecord struct {
	ID               string
	Username         string
	DocumentType     string
	ExtractedData    string
	ExtractionMethod string
	OriginalFileURL  string
	DocumentID       string
	CreatedAt        time.Time
}

// FileResult reports the outcome of processing one document in a batch.
type FileResult struct {
	DocumentID string `json:"documentId"`
	FileName   string `json:"fileName"`
	Status     string `json:"status"` // processed | skipped | failed
	Message    string `json:"message,omitempty"`
	RecordID   string `json:"recordId,omitempty"`
}

const (
	StatusProcessed = "processed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)
