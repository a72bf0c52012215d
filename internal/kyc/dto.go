package kyc

import "time"

// RecordResponse is the outward-facing representation of a KYC record.
type RecordResponse struct {
	RecordID         string    `json:"recordId"`
	Username         string    `json:"username"`
	DocumentType     string    `json:"documentType"`
	ExtractedData    string    `json:"extractedData"`
	ExtractionMethod string    `json:"extractionMethod"`
	OriginalFileURL  string    `json:"originalFileUrl"`
	DocumentID       string    `json:"documentId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toRecordResponse(rec KycRecord) RecordResponse {
	return RecordResponse{
		RecordID:         rec.ID,
		Username:         rec.Username,
		DocumentType:     rec.DocumentType,
		ExtractedData:    rec.ExtractedData,
		ExtractionMethod: rec.ExtractionMethod,
		OriginalFileURL:  rec.OriginalFileURL,
		DocumentID:       rec.DocumentID,
		CreatedAt:        rec.CreatedAt,
	}
}

// dedupeByContent drops records whose extracted text duplicates an earlier
// record for display. Persistence keeps every row; only the view collapses.
func dedupeByContent(recs []KycRecord) []KycRecord {
	seen := make(map[string]struct{}, len(recs))
	out := make([]KycRecord, 0, len(recs))
	for _, rec := range recs {
		if _, ok := seen[rec.ExtractedData]; ok {
			continue
		}
		seen[rec.ExtractedData] = struct{}{}
		out = append(out, rec)
	}
	return out
}

type processRequest struct {
	DocumentIDs []string `json:"documentIds"`
}

type chatRequest struct {
	Username string `json:"username"`
	Query    string `json:"query"`
}
