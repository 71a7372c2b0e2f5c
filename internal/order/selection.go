package order

import (
	"github.com/google/uuid"

	"github.com/resto-crm/api/internal/menu"
)

// Line is an (item, quantity) pair. Quantity is always >= 1; a line whose
// quantity would drop to zero is removed instead.
type Line struct {
	Item     menu.Item
	Quantity int
}

// Selection is the temporary working set of items being picked for one
// position. It holds at most one line per menu item; repeated adds accumulate
// quantity on the existing line. Lines keep insertion order.
type Selection struct {
	lines []Line
}

// Add inserts the item with quantity 1, or increments its line by 1 when the
// item is already selected.
func (s *Selection) Add(item menu.Item) {
	for i := range s.lines {
		if s.lines[i].Item.ID == item.ID {
			s.lines[i].Quantity++
			return
		}
	}
	s.lines = append(s.lines, Line{Item: item, Quantity: 1})
}

// Increment raises the quantity of the given item by 1. No-op when the item
// is not selected.
func (s *Selection) Increment(itemID uuid.UUID) {
	for i := range s.lines {
		if s.lines[i].Item.ID == itemID {
			s.lines[i].Quantity++
			return
		}
	}
}

// Decrement lowers the quantity of the given item by 1, removing the line
// entirely at quantity 1. No-op when the item is not selected.
func (s *Selection) Decrement(itemID uuid.UUID) {
	for i := range s.lines {
		if s.lines[i].Item.ID != itemID {
			continue
		}
		if s.lines[i].Quantity == 1 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity--
		}
		return
	}
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	return len(s.lines) == 0
}

// Lines returns a copy of the selected lines in insertion order.
func (s *Selection) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count is the total number of units selected across all lines.
func (s *Selection) Count() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Selection) clear() {
	s.lines = nil
}
