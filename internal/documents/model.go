package documents

import "time"

// Document category labels offered at upload time. Category is free text when
// the user picks "Other", so these are defaults rather than an enum.
const (
	TypeIDProof      = "ID Proof"
	TypeAddressProof = "Address Proof"
	TypePayroll      = "Payroll Document"
	TypeOther        = "Other"
)

// Document represents an uploaded KYC document owned by a user. Rows are
// immutable once created; the extraction pipeline only reads them.
type Document struct {
	ID         string
	Username   string
	DocType    string
	FileName   string
	StorageKey string
	URL        string
	MimeType   string
	SizeBytes  int64
	UploadedAt time.Time
}
