package shared

import "github.com/google/uuid"

// BaseAggregateRoot adds an optimistic-lock version and a queue of events
// raised since the aggregate was loaded. Services publish the queue once the
// transaction that persisted the aggregate has committed.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
	raised  []DomainEvent
}

// NewBaseAggregateRoot starts a new aggregate at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

// AddDomainEvent queues an event for publication
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.raised = append(a.raised, event)
}

func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent { return a.raised }

func (a *BaseAggregateRoot) ClearDomainEvents() { a.raised = nil }

// OwnedAggregateRoot belongs to exactly one planner account. Repositories
// scope every read of one by OwnerID, so a foreign id behaves like a
// missing one.
type OwnedAggregateRoot struct {
	BaseAggregateRoot
	OwnerID uuid.UUID
}

func NewOwnedAggregateRoot(ownerID uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{BaseAggregateRoot: NewBaseAggregateRoot(), OwnerID: ownerID}
}

// IsOwnedBy reports whether userID owns the aggregate
func (o *OwnedAggregateRoot) IsOwnedBy(userID uuid.UUID) bool {
	return o.OwnerID == userID
}
