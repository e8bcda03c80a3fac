package ordering

import (
	"testing"

	"github.com/domlearn/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func scope() []Position {
	// A=10, B=20, C=30
	return []Position{{ID: 10, Order: 1}, {ID: 20, Order: 2}, {ID: 30, Order: 3}}
}

func TestAssignInsert(t *testing.T) {
	tests := []struct {
		name          string
		siblings      []Position
		requested     *int
		expectedOrder int
		expectedKind  models.ErrorKind
	}{
		{name: "append to empty scope", siblings: nil, expectedOrder: 1},
		{name: "append after max", siblings: scope(), expectedOrder: 4},
		{name: "explicit free trailing order", siblings: scope(), requested: intPtr(4), expectedOrder: 4},
		{name: "collision", siblings: scope(), requested: intPtr(2), expectedKind: models.KindOrderConflict},
		{name: "gap", siblings: scope(), requested: intPtr(6), expectedKind: models.KindInvalidOrder},
		{name: "zero", siblings: scope(), requested: intPtr(0), expectedKind: models.KindInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := AssignInsert(tt.siblings, tt.requested)
			if tt.expectedKind != "" {
				require.Error(t, err)
				assert.True(t, models.IsKind(err, tt.expectedKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedOrder, order)
		})
	}
}

func TestAssignUpdate(t *testing.T) {
	tests := []struct {
		name          string
		id            int
		requested     *int
		expectedOrder int
		expectedKind  models.ErrorKind
	}{
		{name: "keep current when omitted", id: 20, expectedOrder: 2},
		{name: "same order is not a collision", id: 20, requested: intPtr(2), expectedOrder: 2},
		{name: "collision with other sibling", id: 20, requested: intPtr(3), expectedKind: models.KindOrderConflict},
		{name: "beyond scope", id: 20, requested: intPtr(4), expectedKind: models.KindInvalidOrder},
		{name: "unknown id", id: 99, expectedKind: models.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := AssignUpdate(scope(), tt.id, tt.requested)
			if tt.expectedKind != "" {
				require.Error(t, err)
				assert.True(t, models.IsKind(err, tt.expectedKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedOrder, order)
		})
	}
}

func TestAssignUpdate_FillsHoleInNonDenseScope(t *testing.T) {
	siblings := []Position{{ID: 1, Order: 1}, {ID: 2, Order: 3}, {ID: 3, Order: 4}}

	order, err := AssignUpdate(siblings, 3, intPtr(2))

	require.NoError(t, err)
	assert.Equal(t, 2, order)
}

func TestRenumber(t *testing.T) {
	t.Run("permutation", func(t *testing.T) {
		positions, err := Renumber([]int{30, 10, 20})
		require.NoError(t, err)
		assert.Equal(t, []Position{{ID: 30, Order: 1}, {ID: 10, Order: 2}, {ID: 20, Order: 3}}, positions)
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := Renumber([]int{30, 10, 20})
		require.NoError(t, err)
		second, err := Renumber([]int{30, 10, 20})
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Renumber(nil)
		assert.True(t, models.IsKind(err, models.KindMissingField))
	})

	t.Run("non-positive id", func(t *testing.T) {
		_, err := Renumber([]int{1, 0})
		assert.True(t, models.IsKind(err, models.KindMissingField))
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := Renumber([]int{1, 2, 1})
		assert.True(t, models.IsKind(err, models.KindOrderConflict))
	})
}

func TestMembership(t *testing.T) {
	foreign, omitted := Membership(scope(), []int{30, 99, 10})

	assert.Equal(t, []int{99}, foreign)
	assert.Equal(t, []int{20}, omitted)

	foreign, omitted = Membership(scope(), []int{30, 10, 20})
	assert.Empty(t, foreign)
	assert.Empty(t, omitted)
}

func TestCompact(t *testing.T) {
	siblings := []Position{{ID: 10, Order: 1}, {ID: 30, Order: 3}, {ID: 40, Order: 7}}

	changed := Compact(siblings)

	assert.Equal(t, []Position{{ID: 30, Order: 2}, {ID: 40, Order: 3}}, changed)
	assert.Empty(t, Compact(scope()))
}

func TestIsDense(t *testing.T) {
	assert.True(t, IsDense(nil))
	assert.True(t, IsDense([]Position{{ID: 2, Order: 2}, {ID: 1, Order: 1}}))
	assert.False(t, IsDense([]Position{{ID: 1, Order: 1}, {ID: 2, Order: 1}}))
	assert.False(t, IsDense(Without(scope(), 20)))
}
