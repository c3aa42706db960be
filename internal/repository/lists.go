package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/auditpack/auditpack/constants"
	"github.com/auditpack/auditpack/internal/common"
	"github.com/auditpack/auditpack/internal/entity"
)

// ListRepository is the remote collection of inspection lists. Entries live
// embedded in the list row as a JSON sequence, so every entry mutation goes
// through ReplaceEntries as a full-sequence rewrite guarded by the list's
// revision counter.
type ListRepository interface {
	ListAll(ctx context.Context) ([]*entity.InspectionList, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InspectionList, error)
	Create(ctx context.Context, list *entity.InspectionList) error
	CloseList(ctx context.Context, id uuid.UUID) error
	// ReplaceEntries rewrites the whole entries sequence, conditional on
	// expectedRevision. Returns the new revision, or ErrRevisionConflict
	// when a sibling write advanced the row first.
	ReplaceEntries(ctx context.Context, listID uuid.UUID, entries []entity.ProductEntry, expectedRevision int64) (int64, error)
	// HasEntryRoot reports whether any persisted entry, in any list,
	// carries the given organizational root.
	HasEntryRoot(ctx context.Context, root string) (bool, error)
}

type listRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewListRepository(pool *pgxpool.Pool, logger *slog.Logger) ListRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &listRepository{pool: pool, logger: logger}
}

const listColumns = `id, name, establishment, city, inspector_id, is_closed, status, revision, created_at, entries`

func (r *listRepository) ListAll(ctx context.Context) ([]*entity.InspectionList, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+listColumns+` FROM inspection_lists ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list inspection lists", "error", err)
		return nil, common.TransportError("query inspection_lists", err)
	}
	defer rows.Close()

	var out []*entity.InspectionList
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, common.TransportError("iterate inspection_lists", err)
	}
	return out, nil
}

func (r *listRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InspectionList, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+listColumns+` FROM inspection_lists WHERE id = $1`, id)
	l, err := scanList(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewAppError("LIST_NOT_FOUND", fmt.Sprintf("list %s does not exist", id), common.ErrNotFound)
		}
		return nil, err
	}
	return l, nil
}

func (r *listRepository) Create(ctx context.Context, list *entity.InspectionList) error {
	entries, err := json.Marshal(list.Entries)
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO inspection_lists (id, name, establishment, city, inspector_id, is_closed, status, revision, created_at, entries)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		list.ID, list.Name, list.Establishment, list.City, list.InspectorID,
		list.IsClosed, list.Status, list.Revision, list.CreatedAt, entries)
	if err != nil {
		r.logger.Error("failed to create inspection list", "list_id", list.ID, "error", err)
		return common.TransportError("insert inspection_list", err)
	}
	return nil
}

func (r *listRepository) CloseList(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE inspection_lists
		 SET is_closed = TRUE, status = $2, revision = revision + 1
		 WHERE id = $1`,
		id, constants.ListClosed)
	if err != nil {
		r.logger.Error("failed to close inspection list", "list_id", id, "error", err)
		return common.TransportError("close inspection_list", err)
	}
	if ct.RowsAffected() == 0 {
		return common.NewAppError("LIST_NOT_FOUND", fmt.Sprintf("list %s does not exist", id), common.ErrNotFound)
	}
	return nil
}

func (r *listRepository) ReplaceEntries(ctx context.Context, listID uuid.UUID, entries []entity.ProductEntry, expectedRevision int64) (int64, error) {
	payload, err := json.Marshal(entries)
	if err != nil {
		return 0, fmt.Errorf("marshal entries: %w", err)
	}

	var newRevision int64
	err = r.pool.QueryRow(ctx,
		`UPDATE inspection_lists
		 SET entries = $1, revision = revision + 1
		 WHERE id = $2 AND revision = $3
		 RETURNING revision`,
		payload, listID, expectedRevision).Scan(&newRevision)
	if err == nil {
		return newRevision, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error("failed to replace entries", "list_id", listID, "error", err)
		return 0, common.TransportError("update inspection_list entries", err)
	}

	// Zero rows: either the list is gone or a sibling write advanced the
	// revision. Tell the two apart so the caller can retry only conflicts.
	var current int64
	err = r.pool.QueryRow(ctx,
		`SELECT revision FROM inspection_lists WHERE id = $1`, listID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, common.NewAppError("LIST_NOT_FOUND", fmt.Sprintf("list %s does not exist", listID), common.ErrNotFound)
	}
	if err != nil {
		return 0, common.TransportError("read inspection_list revision", err)
	}
	return 0, common.NewAppError("REVISION_CONFLICT",
		fmt.Sprintf("list %s moved from revision %d to %d", listID, expectedRevision, current),
		common.ErrRevisionConflict)
}

func (r *listRepository) HasEntryRoot(ctx context.Context, root string) (bool, error) {
	if root == "" {
		return false, nil
	}
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM inspection_lists, jsonb_array_elements(entries) AS entry
		   WHERE entry->>'cnpj_raiz' = $1
		 )`, root).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check entry root", "root", root, "error", err)
		return false, common.TransportError("query entry root", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanList(row rowScanner) (*entity.InspectionList, error) {
	var (
		l       entity.InspectionList
		status  string
		entries []byte
	)
	err := row.Scan(&l.ID, &l.Name, &l.Establishment, &l.City, &l.InspectorID,
		&l.IsClosed, &status, &l.Revision, &l.CreatedAt, &entries)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, common.TransportError("scan inspection_list", err)
	}
	l.Status = constants.ListStatus(status)
	l.Entries = []entity.ProductEntry{}
	if len(entries) > 0 {
		if err := json.Unmarshal(entries, &l.Entries); err != nil {
			return nil, fmt.Errorf("decode entries for list %s: %w", l.ID, err)
		}
	}
	return &l, nil
}
