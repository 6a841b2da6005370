package billing

import (
	"context"
	"time"

	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/billing"
)

// PlanCache holds the active plan catalog between reads
type PlanCache interface {
	// Get returns the cached catalog; ok is false on a miss
	Get(ctx context.Context) (plans []*billing.Plan, ok bool, err error)
	Set(ctx context.Context, plans []*billing.Plan, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// ProofStorage issues upload URLs for payment proof files
type ProofStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for storageKey
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// ObjectURL is where the object can be read once uploaded
	ObjectURL(storageKey string) string
}
