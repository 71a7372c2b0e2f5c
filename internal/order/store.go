package order

import (
	"sync"

	"github.com/google/uuid"
)

// DraftStore tracks open drafts, at most one per table.
type DraftStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Draft
	byTable map[uuid.UUID]*Draft
}

// NewDraftStore creates an empty DraftStore.
func NewDraftStore() *DraftStore {
	return &DraftStore{
		byID:    make(map[uuid.UUID]*Draft),
		byTable: make(map[uuid.UUID]*Draft),
	}
}

// Open returns the draft already open for the table, or creates one.
func (s *DraftStore) Open(tableID uuid.UUID) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.byTable[tableID]; ok {
		return d
	}
	d := NewDraft(tableID)
	s.byID[d.ID()] = d
	s.byTable[tableID] = d
	return d
}

// Get looks an open draft up by identity.
func (s *DraftStore) Get(id uuid.UUID) (*Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byID[id]
	return d, ok
}

// Discard drops a draft without committing it. No-op when the draft is not
// open.
func (s *DraftStore) Discard(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.byID[id]
	if !ok {
		return
	}
	delete(s.byID, id)
	delete(s.byTable, d.TableID())
}

// DiscardForTable drops the draft open for a table, if any. Used when the
// table itself is deleted.
func (s *DraftStore) DiscardForTable(tableID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.byTable[tableID]
	if !ok {
		return
	}
	delete(s.byID, d.ID())
	delete(s.byTable, tableID)
}
