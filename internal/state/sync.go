package state

import (
	"context"
	"log/slog"

	"github.com/auditpack/auditpack/internal/entity"
	"github.com/auditpack/auditpack/internal/repository"
)

// Syncer reconciles the authoritative remote collection into the local
// store. Refresh is idempotent and used for initial population (after
// authentication); post-ingest updates come from the known-good write, not
// from a re-fetch.
type Syncer struct {
	lists  repository.ListRepository
	store  *Store
	logger *slog.Logger
}

func NewSyncer(lists repository.ListRepository, store *Store, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{lists: lists, store: store, logger: logger}
}

// Refresh fetches the full remote collection, newest-created first, and
// replaces the local state wholesale. On failure the local state is left
// exactly as it was.
func (s *Syncer) Refresh(ctx context.Context) ([]*entity.InspectionList, error) {
	fetched, err := s.lists.ListAll(ctx)
	if err != nil {
		s.logger.Error("sync.refresh.failed", "error", err)
		return nil, err
	}
	s.store.Replace(fetched)

	entries := 0
	for _, l := range fetched {
		entries += len(l.Entries)
	}
	s.logger.Info("sync.refresh.ok", "lists", len(fetched), "entries", entries)
	return fetched, nil
}
