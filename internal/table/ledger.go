package table

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/resto-crm/api/internal/enum"
	"github.com/resto-crm/api/internal/order"
)

// Errors returned by the ledger.
var (
	ErrTableNotFound = errors.New("table not found")
	ErrInvalidNumber = errors.New("table number must be >= 1")
	ErrInvalidSeats  = errors.New("seat count must be >= 1")
	ErrTableNotFree  = errors.New("table is not free")
	ErrTableOccupied = errors.New("table already has an order")
)

// Table is one table on the floor. Order is non-nil exactly when Status is
// occupied. Number is a display label and is not required to be unique.
type Table struct {
	ID     uuid.UUID
	Number int
	Seats  int
	Status string
	Order  *order.Order
}

// Ledger owns the set of tables. The visible list keeps insertion order;
// there is no reordering operation. All methods are safe for concurrent use.
type Ledger struct {
	mu     sync.RWMutex
	tables []*Table
	byID   map[uuid.UUID]*Table
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{byID: make(map[uuid.UUID]*Table)}
}

// Create adds a table. It starts free with no order and a fresh identity.
func (l *Ledger) Create(number, seats int) (Table, error) {
	if number < 1 {
		return Table{}, ErrInvalidNumber
	}
	if seats < 1 {
		return Table{}, ErrInvalidSeats
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	t := &Table{
		ID:     uuid.New(),
		Number: number,
		Seats:  seats,
		Status: enum.TableStatusFree,
	}
	l.tables = append(l.tables, t)
	l.byID[t.ID] = t
	return *t, nil
}

// List returns all tables in insertion order.
func (l *Ledger) List() []Table {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Table, len(l.tables))
	for i, t := range l.tables {
		out[i] = *t
	}
	return out
}

// Get looks a table up by identity.
func (l *Ledger) Get(id uuid.UUID) (Table, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.byID[id]
	if !ok {
		return Table{}, ErrTableNotFound
	}
	return *t, nil
}

// Delete removes a table and its order, if any, unconditionally. There is no
// archive and no undo.
func (l *Ledger) Delete(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byID[id]; !ok {
		return ErrTableNotFound
	}
	delete(l.byID, id)
	for i, t := range l.tables {
		if t.ID == id {
			l.tables = append(l.tables[:i], l.tables[i+1:]...)
			break
		}
	}
	return nil
}

// Reserve marks a free table as reserved. A reserved table still has no
// order.
func (l *Ledger) Reserve(id uuid.UUID) (Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.byID[id]
	if !ok {
		return Table{}, ErrTableNotFound
	}
	if t.Status != enum.TableStatusFree {
		return Table{}, ErrTableNotFree
	}
	t.Status = enum.TableStatusReserved
	return *t, nil
}

// Release returns a reserved table to free. Guarded no-op when the table is
// not reserved.
func (l *Ledger) Release(id uuid.UUID) (Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.byID[id]
	if !ok {
		return Table{}, ErrTableNotFound
	}
	if t.Status == enum.TableStatusReserved {
		t.Status = enum.TableStatusFree
	}
	return *t, nil
}

// AttachOrder seats a committed order at the table and flips it to occupied.
// Attaching is allowed from free or reserved; a table that already holds an
// order is rejected.
func (l *Ledger) AttachOrder(id uuid.UUID, o order.Order) (Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.byID[id]
	if !ok {
		return Table{}, ErrTableNotFound
	}
	if t.Order != nil {
		return Table{}, ErrTableOccupied
	}
	t.Order = &o
	t.Status = enum.TableStatusOccupied
	return *t, nil
}

// CloseOrder clears the table's order and returns it to free. Guarded no-op
// when the table has no order.
func (l *Ledger) CloseOrder(id uuid.UUID) (Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.byID[id]
	if !ok {
		return Table{}, ErrTableNotFound
	}
	if t.Order != nil {
		t.Order = nil
		t.Status = enum.TableStatusFree
	}
	return *t, nil
}
