package order

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/resto-crm/api/internal/menu"
)

// Errors returned by draft operations.
var (
	ErrEmptyDraft       = errors.New("draft has no items")
	ErrEmptySelection   = errors.New("selection is empty")
	ErrPositionNotFound = errors.New("position not found")
)

// Position is a user-defined grouping of lines inside a draft. Grouping is an
// editing convenience only; commit flattens all positions into one list.
type Position struct {
	ID    uuid.UUID
	Lines []Line
}

// Item is a committed order line: a snapshot of name, quantity and price
// taken at commit time, decoupled from the live catalog.
type Item struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is an immutable committed order. Total always equals the sum of
// quantity × price over Items and is never recomputed after commit.
type Order struct {
	ID    uuid.UUID       `json:"id"`
	Items []Item          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Draft composes an order for one table: an ordered list of positions (never
// fewer than one), the working selection, and the item-browser filter state.
// All methods are safe for concurrent use.
type Draft struct {
	mu        sync.Mutex
	id        uuid.UUID
	tableID   uuid.UUID
	positions []*Position
	selection Selection
	query     string
	category  string
}

// NewDraft creates a draft for the given table with a single empty position.
func NewDraft(tableID uuid.UUID) *Draft {
	d := &Draft{
		id:      uuid.New(),
		tableID: tableID,
	}
	d.reset()
	return d
}

func (d *Draft) reset() {
	d.positions = []*Position{{ID: uuid.New()}}
	d.selection.clear()
	d.query = ""
	d.category = menu.CategoryAll
}

// ID returns the draft identity.
func (d *Draft) ID() uuid.UUID { return d.id }

// TableID returns the table the draft is composing an order for.
func (d *Draft) TableID() uuid.UUID { return d.tableID }

// AddPosition appends a fresh empty position and returns its identity.
func (d *Draft) AddPosition() uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := &Position{ID: uuid.New()}
	d.positions = append(d.positions, p)
	return p.ID
}

// RemovePosition deletes a position. Removing the last remaining position is
// silently rejected so there is always a position to edit.
func (d *Draft) RemovePosition(positionID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.positions) == 1 {
		return
	}
	for i, p := range d.positions {
		if p.ID == positionID {
			d.positions = append(d.positions[:i], d.positions[i+1:]...)
			return
		}
	}
}

// RemoveLine deletes a line from a position. No-op when the position or the
// line is absent.
func (d *Draft) RemoveLine(positionID, itemID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.position(positionID)
	if p == nil {
		return
	}
	for i, l := range p.Lines {
		if l.Item.ID == itemID {
			p.Lines = append(p.Lines[:i], p.Lines[i+1:]...)
			return
		}
	}
}

// AddItem adds one unit of the item to the working selection.
func (d *Draft) AddItem(item menu.Item) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection.Add(item)
}

// IncrementItem raises the selected quantity of the item by one.
func (d *Draft) IncrementItem(itemID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection.Increment(itemID)
}

// DecrementItem lowers the selected quantity of the item by one.
func (d *Draft) DecrementItem(itemID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection.Decrement(itemID)
}

// SetFilter stores the item-browser filter state.
func (d *Draft) SetFilter(query, category string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.query = query
	if category == "" {
		category = menu.CategoryAll
	}
	d.category = category
}

// Filter returns the stored item-browser filter state.
func (d *Draft) Filter() (query, category string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query, d.category
}

// Confirm merges the working selection into the given position: quantities
// accumulate on lines already holding the same item, new items get new lines.
// The selection and the filter state are then cleared. When the selection is
// empty the call is a guarded no-op and nothing is cleared, so an accidental
// double confirm loses no state.
func (d *Draft) Confirm(positionID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selection.Empty() {
		return ErrEmptySelection
	}
	p := d.position(positionID)
	if p == nil {
		return ErrPositionNotFound
	}
	for _, sl := range d.selection.Lines() {
		merged := false
		for i := range p.Lines {
			if p.Lines[i].Item.ID == sl.Item.ID {
				p.Lines[i].Quantity += sl.Quantity
				merged = true
				break
			}
		}
		if !merged {
			p.Lines = append(p.Lines, sl)
		}
	}
	d.selection.clear()
	d.query = ""
	d.category = menu.CategoryAll
	return nil
}

// AggregateTotal is the pre-commit display total: the sum of quantity × price
// over every position's lines.
func (d *Draft) AggregateTotal() decimal.Decimal {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.total()
}

// Commit flattens all positions into an immutable order and hands it to
// attach. The draft is reset to a single fresh empty position only after
// attach succeeds, so a rejected attach (table already occupied) loses
// nothing. A draft with no lines in any position is rejected with
// ErrEmptyDraft.
func (d *Draft) Commit(attach func(Order) error) (Order, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var items []Item
	for _, p := range d.positions {
		for _, l := range p.Lines {
			items = append(items, Item{
				Name:     l.Item.Name,
				Quantity: l.Quantity,
				Price:    l.Item.Price,
			})
		}
	}
	if len(items) == 0 {
		return Order{}, ErrEmptyDraft
	}

	o := Order{
		ID:    uuid.New(),
		Items: items,
		Total: d.total(),
	}
	if err := attach(o); err != nil {
		return Order{}, err
	}
	d.reset()
	return o, nil
}

// Snapshot is a consistent copy of the draft state for rendering.
type Snapshot struct {
	ID        uuid.UUID
	TableID   uuid.UUID
	Positions []Position
	Selection []Line
	Query     string
	Category  string
	Total     decimal.Decimal
}

// Snapshot returns a deep copy of the current draft state.
func (d *Draft) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := Snapshot{
		ID:        d.id,
		TableID:   d.tableID,
		Positions: make([]Position, len(d.positions)),
		Selection: d.selection.Lines(),
		Query:     d.query,
		Category:  d.category,
		Total:     d.total(),
	}
	for i, p := range d.positions {
		lines := make([]Line, len(p.Lines))
		copy(lines, p.Lines)
		snap.Positions[i] = Position{ID: p.ID, Lines: lines}
	}
	return snap
}

func (d *Draft) position(id uuid.UUID) *Position {
	for _, p := range d.positions {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (d *Draft) total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range d.positions {
		for _, l := range p.Lines {
			total = total.Add(l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
	}
	return total
}
