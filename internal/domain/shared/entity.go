package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity is the identity and audit stamp every stored record carries.
// Timestamps are UTC at microsecond precision so that a value read back from
// PostgreSQL compares equal to the one written.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity stamps a fresh random id with the current time
func NewBaseEntity() BaseEntity {
	now := Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch records a modification
func (e *BaseEntity) Touch() {
	e.UpdatedAt = Now()
}

// Now is the clock used for entity stamps
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
