package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("load event: %w", NotFound("Event"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, "load event: Event not found", err.Error())
}

func TestValidationErrors(t *testing.T) {
	t.Run("no errors returns nil", func(t *testing.T) {
		v := ValidationErrors{}
		assert.False(t, v.HasErrors())
		assert.NoError(t, v.Err())
	})

	t.Run("collects messages per field", func(t *testing.T) {
		v := ValidationErrors{}
		v.Add("password", "too short")
		v.Add("password", "needs a digit")
		v.Add("email", "required")

		err := v.Err()
		require.Error(t, err)

		var de *DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "VALIDATION_ERROR", de.Code)
		assert.Equal(t, []string{"too short", "needs a digit"}, de.Fields["password"])
		assert.Equal(t, "Validation failed (email: required, password: too short; needs a digit)", de.Error())
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("single field helper", func(t *testing.T) {
		err := NewValidationError("password_confirm", "Passwords do not match")
		assert.Equal(t, map[string][]string{"password_confirm": {"Passwords do not match"}}, err.Fields)
	})
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{Page: 0, PageSize: 500}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageSize, f.PageSize)
	assert.NotNil(t, f.Filters)

	f = Filter{Page: 3, PageSize: 0}.Normalize()
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.Equal(t, 40, f.Offset())
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated[int](nil, 41, 2, 20)
	assert.Equal(t, []int{}, p.Results)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(41), p.Count)

	empty := NewPaginated([]string{}, 0, 1, 20)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestOwnedAggregateRoot(t *testing.T) {
	owner := NewBaseEntity().ID
	root := NewOwnedAggregateRoot(owner)
	assert.True(t, root.IsOwnedBy(owner))
	assert.False(t, root.IsOwnedBy(NewBaseEntity().ID))
	assert.Equal(t, 1, root.Version)

	root.AddDomainEvent(&testEvent{BaseDomainEvent: NewBaseDomainEvent("x.happened", "X", root.ID, owner)})
	assert.Len(t, root.GetDomainEvents(), 1)
	root.ClearDomainEvents()
	assert.Empty(t, root.GetDomainEvents())
}

type testEvent struct {
	BaseDomainEvent
}
