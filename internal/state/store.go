// Package state holds the client's in-memory mirror of the remote lists
// collection. The orchestrator mutates it after a confirmed write and the
// syncer replaces it wholesale; nothing else writes to it.
package state

import (
	"sync"

	"github.com/google/uuid"

	"github.com/auditpack/auditpack/internal/entity"
)

// Store is the mutable lists mirror. Lists are held newest-created first;
// entries within a list newest-captured first.
type Store struct {
	mu    sync.RWMutex
	lists []*entity.InspectionList
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps the whole collection for the fetched one. No field-level
// merge is attempted with unconfirmed local edits.
func (s *Store) Replace(lists []*entity.InspectionList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = lists
}

// Lists returns the current collection. The slice is a copy; the list
// pointers are shared and must be treated as read-only by callers.
func (s *Store) Lists() []*entity.InspectionList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.InspectionList, len(s.lists))
	copy(out, s.lists)
	return out
}

// Get returns the mirrored list with the given id.
func (s *Store) Get(id uuid.UUID) (*entity.InspectionList, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lists {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// Snapshot returns a copy of a list's entries sequence and its revision,
// suitable as the base of a read-modify-write cycle.
func (s *Store) Snapshot(id uuid.UUID) ([]entity.ProductEntry, int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lists {
		if l.ID == id {
			entries := make([]entity.ProductEntry, len(l.Entries))
			copy(entries, l.Entries)
			return entries, l.Revision, true
		}
	}
	return nil, 0, false
}

// ApplyEntries mirrors a known-good remote write: the list's entries
// sequence and revision are set to what the store just accepted. A list
// that is not mirrored yet is left alone; the next refresh picks it up.
func (s *Store) ApplyEntries(id uuid.UUID, entries []entity.ProductEntry, revision int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.lists {
		if l.ID != id {
			continue
		}
		updated := *l
		updated.Entries = entries
		updated.Revision = revision
		s.lists[i] = &updated
		return true
	}
	return false
}
