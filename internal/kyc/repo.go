package kyc

import "context"

// Repo persists KycRecord rows. Inserts are append-only; there is no update.
type Repo interface {
	Create(ctx context.Context, rec KycRecord) error
	GetByID(ctx context.Context, id string) (KycRecord, error)
	ListByUsername(ctx context.Context, username string) ([]KycRecord, error)
	ListUsernames(ctx context.Context) ([]string, error)
}
