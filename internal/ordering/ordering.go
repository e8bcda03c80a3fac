// Package ordering assigns and renumbers order values inside a sibling scope
// (the sections of one level, or the lessons of one section).
//
// Everything here is pure: callers load the scope's positions inside a transaction,
// ask the engine what to write, and write it in the same transaction.
package ordering

import (
	"sort"

	"github.com/domlearn/backend/internal/models"
)

// Position is the order value of one sibling
type Position struct {
	ID    int
	Order int
}

// MaxOrder returns the largest order value in the scope, or 0 for an empty scope
func MaxOrder(siblings []Position) int {
	highest := 0
	for _, p := range siblings {
		if p.Order > highest {
			highest = p.Order
		}
	}
	return highest
}

// AssignInsert returns the order for a new sibling.
// Without a requested order the sibling is appended after the current maximum.
// A requested order must be positive, must not collide with a sibling and must not open a gap.
func AssignInsert(siblings []Position, requested *int) (int, error) {
	if requested == nil {
		return MaxOrder(siblings) + 1, nil
	}

	order := *requested
	if order < 1 || order > len(siblings)+1 {
		return 0, models.NewValidationError(models.KindInvalidOrder,
			"order %d is out of range 1..%d", order, len(siblings)+1)
	}
	if holder, ok := holderOf(siblings, order, 0); ok {
		return 0, models.NewValidationError(models.KindOrderConflict,
			"order %d is already taken by %d", order, holder)
	}
	return order, nil
}

// AssignUpdate returns the order for an existing sibling.
// Without a requested order the current one is kept. The collision rule of AssignInsert
// applies against all other siblings, and the order must stay within 1..len(siblings).
func AssignUpdate(siblings []Position, id int, requested *int) (int, error) {
	current, ok := orderOf(siblings, id)
	if !ok {
		return 0, models.NewError(models.KindNotFound, "%d is not part of this scope", id)
	}
	if requested == nil || *requested == current {
		return current, nil
	}

	order := *requested
	if order < 1 || order > len(siblings) {
		return 0, models.NewValidationError(models.KindInvalidOrder,
			"order %d is out of range 1..%d", order, len(siblings))
	}
	if holder, taken := holderOf(siblings, order, id); taken {
		return 0, models.NewValidationError(models.KindOrderConflict,
			"order %d is already taken by %d", order, holder)
	}
	return order, nil
}

// Renumber assigns 1, 2, 3, ... to ids in the given sequence.
// ids must be non-empty, positive and free of duplicates.
func Renumber(ids []int) ([]Position, error) {
	if len(ids) == 0 {
		return nil, models.NewValidationError(models.KindMissingField, "ids are required")
	}

	seen := make(map[int]struct{}, len(ids))
	positions := make([]Position, 0, len(ids))
	for i, id := range ids {
		if id <= 0 {
			return nil, models.NewValidationError(models.KindMissingField, "invalid id %d", id)
		}
		if _, dup := seen[id]; dup {
			return nil, models.NewValidationError(models.KindOrderConflict, "id %d is listed twice", id)
		}
		seen[id] = struct{}{}
		positions = append(positions, Position{ID: id, Order: i + 1})
	}
	return positions, nil
}

// Membership splits ids against the scope: foreign holds ids that are not siblings,
// omitted holds siblings that are not listed (sorted by current order).
func Membership(siblings []Position, ids []int) (foreign []int, omitted []int) {
	listed := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		listed[id] = struct{}{}
	}
	members := make(map[int]struct{}, len(siblings))
	for _, p := range sorted(siblings) {
		members[p.ID] = struct{}{}
		if _, ok := listed[p.ID]; !ok {
			omitted = append(omitted, p.ID)
		}
	}
	for _, id := range ids {
		if _, ok := members[id]; !ok {
			foreign = append(foreign, id)
		}
	}
	return foreign, omitted
}

// Compact renumbers the scope to 1..N keeping the relative order, ties broken by id.
// Only positions whose order changes are returned.
func Compact(siblings []Position) []Position {
	var changed []Position
	for i, p := range sorted(siblings) {
		if p.Order != i+1 {
			changed = append(changed, Position{ID: p.ID, Order: i + 1})
		}
	}
	return changed
}

// Without returns the scope minus the sibling with the given id
func Without(siblings []Position, id int) []Position {
	out := make([]Position, 0, len(siblings))
	for _, p := range siblings {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// IsDense reports whether the order values are exactly 1..N
func IsDense(siblings []Position) bool {
	for i, p := range sorted(siblings) {
		if p.Order != i+1 {
			return false
		}
	}
	return true
}

func sorted(siblings []Position) []Position {
	out := make([]Position, len(siblings))
	copy(out, siblings)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func orderOf(siblings []Position, id int) (int, bool) {
	for _, p := range siblings {
		if p.ID == id {
			return p.Order, true
		}
	}
	return 0, false
}

func holderOf(siblings []Position, order, exceptID int) (int, bool) {
	for _, p := range siblings {
		if p.Order == order && p.ID != exceptID {
			return p.ID, true
		}
	}
	return 0, false
}
