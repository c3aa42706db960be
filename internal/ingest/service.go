// Package ingest sequences one capture event: extraction, prospect
// classification, duplicate-in-progress guarding, remote persistence, and
// local-state reconciliation.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/auditpack/auditpack/constants"
	"github.com/auditpack/auditpack/internal/cnpj"
	"github.com/auditpack/auditpack/internal/common"
	"github.com/auditpack/auditpack/internal/entity"
	"github.com/auditpack/auditpack/internal/prospect"
	"github.com/auditpack/auditpack/internal/repository"
	"github.com/auditpack/auditpack/internal/state"
	"github.com/auditpack/auditpack/internal/vision"
)

// maxConflictRetries bounds the read-modify-write cycle when a sibling
// client advanced the list's revision between our read and our write.
const maxConflictRetries = 3

// Service orchestrates entry ingestion. One Service belongs to one client;
// the processing flag serializes ingestions within it but does not exclude
// other clients, which is what the revision check on the write is for.
type Service struct {
	extractor vision.Extractor
	lists     repository.ListRepository
	store     *state.Store
	refRoots  map[string]struct{}
	busy      atomic.Bool
	logger    *slog.Logger
}

func NewService(extractor vision.Extractor, lists repository.ListRepository, store *state.Store, referenceCNPJs []string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		extractor: extractor,
		lists:     lists,
		store:     store,
		refRoots:  prospect.ReferenceSet(referenceCNPJs),
		logger:    logger,
	}
}

// Processing reports whether an ingestion is in flight; the capture surface
// uses it to drive progress feedback.
func (s *Service) Processing() bool {
	return s.busy.Load()
}

// Ingest turns a set of photos into a persisted ProductEntry on the given
// list. Every failure path leaves both the remote store and the local
// mirror exactly as they were, and always clears the processing flag.
func (s *Service) Ingest(ctx context.Context, sess entity.Session, listID uuid.UUID, photos []string) (*entity.ProductEntry, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}

	if !sess.Valid() {
		return nil, common.ValidationError("no authenticated inspector")
	}
	if listID == uuid.Nil {
		return nil, common.ValidationError("no active list selected")
	}
	if len(photos) == 0 {
		return nil, common.ValidationError("at least one photo is required")
	}

	if !s.busy.CompareAndSwap(false, true) {
		s.logger.Warn("ingest.rejected_busy", "req_id", rid, "list_id", listID)
		return nil, common.NewAppError("INGEST_BUSY", "another capture is still processing", common.ErrIngestBusy)
	}
	defer s.busy.Store(false)

	start := time.Now()
	s.logger.Info("ingest.start",
		"req_id", rid,
		"list_id", listID,
		"inspector_id", sess.User.ID,
		"photos", len(photos),
	)

	extracted, _, err := s.extractor.Extract(ctx, photos)
	if err != nil {
		s.logger.Error("ingest.extract.failed", "req_id", rid, "list_id", listID, "error", err)
		return nil, err
	}

	isNew := prospect.Classify(extracted, s.knownRoots(ctx, rid, extracted))

	entry := entity.ProductEntry{
		ID:            uuid.New(),
		ListID:        listID,
		InspectorID:   sess.User.ID,
		Photos:        photos,
		Extracted:     extracted,
		CNPJRaiz:      cnpj.FirstRoot(extracted.CNPJ),
		IsNewProspect: isNew,
		ReviewStatus:  constants.ReviewPending,
		CapturedAt:    time.Now().UTC(),
	}

	if err := s.persist(ctx, rid, listID, entry); err != nil {
		return nil, err
	}

	s.logger.Info("ingest.ok",
		"req_id", rid,
		"list_id", listID,
		"entry_id", entry.ID,
		"cnpj_raiz", entry.CNPJRaiz,
		"is_new_prospect", entry.IsNewProspect,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &entry, nil
}

// knownRoots merges the static reference set with a live existence check
// against previously persisted entries sharing any of the extraction's
// roots. The live lookup is advisory: classification reflects point-in-time
// knowledge, so a failed lookup degrades to the static set.
func (s *Service) knownRoots(ctx context.Context, rid string, x entity.ExtractedData) map[string]struct{} {
	known := make(map[string]struct{}, len(s.refRoots)+1)
	for root := range s.refRoots {
		known[root] = struct{}{}
	}
	for _, root := range cnpj.Roots(x.CNPJ) {
		if _, already := known[root]; already {
			continue
		}
		exists, err := s.lists.HasEntryRoot(ctx, root)
		if err != nil {
			s.logger.Warn("ingest.classify.lookup_failed", "req_id", rid, "root", root, "error", err)
			continue
		}
		if exists {
			known[root] = struct{}{}
		}
	}
	return known
}

// persist runs the read-modify-write cycle: prepend the entry to the
// current sequence (newest first) and replace the whole sequence remotely,
// conditional on the revision the read observed. On conflict the
// authoritative row is re-read and the cycle retried a bounded number of
// times. The local mirror is only touched after the store confirms.
func (s *Service) persist(ctx context.Context, rid string, listID uuid.UUID, entry entity.ProductEntry) error {
	entries, revision, mirrored := s.store.Snapshot(listID)
	if !mirrored {
		list, err := s.lists.GetByID(ctx, listID)
		if err != nil {
			s.logger.Error("ingest.persist.read_failed", "req_id", rid, "list_id", listID, "error", err)
			return err
		}
		entries, revision = list.Entries, list.Revision
	}

	for attempt := 0; ; attempt++ {
		next := make([]entity.ProductEntry, 0, len(entries)+1)
		next = append(next, entry)
		next = append(next, entries...)

		newRevision, err := s.lists.ReplaceEntries(ctx, listID, next, revision)
		if err == nil {
			s.store.ApplyEntries(listID, next, newRevision)
			return nil
		}
		if !errors.Is(err, common.ErrRevisionConflict) || attempt >= maxConflictRetries {
			s.logger.Error("ingest.persist.failed",
				"req_id", rid, "list_id", listID, "attempt", attempt, "error", err)
			return err
		}

		s.logger.Warn("ingest.persist.conflict",
			"req_id", rid, "list_id", listID, "attempt", attempt, "revision", revision)
		list, err := s.lists.GetByID(ctx, listID)
		if err != nil {
			s.logger.Error("ingest.persist.reread_failed", "req_id", rid, "list_id", listID, "error", err)
			return err
		}
		entries, revision = list.Entries, list.Revision
	}
}
