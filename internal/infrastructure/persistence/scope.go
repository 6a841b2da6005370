package persistence

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/m3shovon/Event-SaaS-Platform/internal/domain/shared"
	"gorm.io/gorm"
)

// OwnedBy restricts a query on an owned table (events, vendors) to one user
func OwnedBy(ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", ownerID)
	}
}

// ThroughOwnedEvent restricts a query on an event child table (budget_items,
// guests) to rows whose parent event belongs to the user.
func ThroughOwnedEvent(ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("event_id IN (SELECT id FROM events WHERE user_id = ?)", ownerID)
	}
}

// Paginate applies the filter's page window
func Paginate(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(filter.Offset()).Limit(filter.PageSize)
	}
}

// searchPattern builds a case-insensitive LIKE pattern. Callers compare against LOWER(column).
func searchPattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// translateNotFound maps gorm's missing-row error to a domain NOT_FOUND naming the resource
func translateNotFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NotFound(resource)
	}
	return err
}

// translateDuplicate maps a unique-constraint violation to ALREADY_EXISTS.
// Requires the connection to be opened with TranslateError.
func translateDuplicate(err error, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, message)
	}
	return err
}

// boolFilter accepts the bool or string forms a query-string filter may arrive in
func boolFilter(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(v) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	return false, false
}
