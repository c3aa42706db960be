package state

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditpack/auditpack/constants"
	"github.com/auditpack/auditpack/internal/entity"
)

func makeList(name string, createdAt time.Time) *entity.InspectionList {
	return &entity.InspectionList{
		ID:        uuid.New(),
		Name:      name,
		Status:    constants.ListExecuting,
		CreatedAt: createdAt,
		Entries:   []entity.ProductEntry{},
	}
}

func TestStore_ReplaceIsWholesale(t *testing.T) {
	store := NewStore()
	first := makeList("primeira", time.Now())
	store.Replace([]*entity.InspectionList{first})

	second := makeList("segunda", time.Now())
	store.Replace([]*entity.InspectionList{second})

	lists := store.Lists()
	require.Len(t, lists, 1)
	assert.Equal(t, second.ID, lists[0].ID)

	_, found := store.Get(first.ID)
	assert.False(t, found, "no field-level merge with the previous collection")
}

func TestStore_SnapshotCopiesEntries(t *testing.T) {
	list := makeList("lista", time.Now())
	list.Entries = []entity.ProductEntry{{ID: uuid.New()}}
	list.Revision = 3
	store := NewStore()
	store.Replace([]*entity.InspectionList{list})

	entries, revision, ok := store.Snapshot(list.ID)
	require.True(t, ok)
	assert.Equal(t, int64(3), revision)
	require.Len(t, entries, 1)

	// Mutating the snapshot must not leak into the mirror.
	entries[0].CNPJRaiz = "mutated"
	mirroredEntries, _, _ := store.Snapshot(list.ID)
	assert.Empty(t, mirroredEntries[0].CNPJRaiz)
}

func TestStore_SnapshotUnknownList(t *testing.T) {
	store := NewStore()
	_, _, ok := store.Snapshot(uuid.New())
	assert.False(t, ok)
}

func TestStore_ApplyEntries(t *testing.T) {
	list := makeList("lista", time.Now())
	store := NewStore()
	store.Replace([]*entity.InspectionList{list})

	entry := entity.ProductEntry{ID: uuid.New(), ListID: list.ID}
	ok := store.ApplyEntries(list.ID, []entity.ProductEntry{entry}, 1)
	require.True(t, ok)

	mirrored, found := store.Get(list.ID)
	require.True(t, found)
	assert.Equal(t, int64(1), mirrored.Revision)
	require.Len(t, mirrored.Entries, 1)
	assert.Equal(t, entry.ID, mirrored.Entries[0].ID)

	assert.False(t, store.ApplyEntries(uuid.New(), nil, 1), "unmirrored lists are left to the next refresh")
}

type fakeLister struct {
	lists []*entity.InspectionList
	err   error
	calls int
}

func (f *fakeLister) ListAll(ctx context.Context) ([]*entity.InspectionList, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.lists, nil
}

func (f *fakeLister) GetByID(ctx context.Context, id uuid.UUID) (*entity.InspectionList, error) {
	return nil, nil
}
func (f *fakeLister) Create(ctx context.Context, list *entity.InspectionList) error { return nil }
func (f *fakeLister) CloseList(ctx context.Context, id uuid.UUID) error             { return nil }
func (f *fakeLister) ReplaceEntries(ctx context.Context, listID uuid.UUID, entries []entity.ProductEntry, expectedRevision int64) (int64, error) {
	return 0, nil
}
func (f *fakeLister) HasEntryRoot(ctx context.Context, root string) (bool, error) {
	return false, nil
}

func TestSyncer_RefreshReplacesState(t *testing.T) {
	newer := makeList("nova", time.Now())
	older := makeList("antiga", time.Now().Add(-time.Hour))
	lister := &fakeLister{lists: []*entity.InspectionList{newer, older}}

	store := NewStore()
	store.Replace([]*entity.InspectionList{makeList("obsoleta", time.Now())})

	syncer := NewSyncer(lister, store, nil)
	got, err := syncer.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	lists := store.Lists()
	require.Len(t, lists, 2)
	assert.Equal(t, newer.ID, lists[0].ID, "remote ordering (newest first) is preserved")
}

func TestSyncer_RefreshFailureLeavesStateUntouched(t *testing.T) {
	existing := makeList("atual", time.Now())
	store := NewStore()
	store.Replace([]*entity.InspectionList{existing})

	lister := &fakeLister{err: assert.AnError}
	syncer := NewSyncer(lister, store, nil)

	_, err := syncer.Refresh(context.Background())
	require.Error(t, err)

	lists := store.Lists()
	require.Len(t, lists, 1)
	assert.Equal(t, existing.ID, lists[0].ID)
}

func TestSyncer_RefreshIsIdempotent(t *testing.T) {
	lister := &fakeLister{lists: []*entity.InspectionList{makeList("lista", time.Now())}}
	store := NewStore()
	syncer := NewSyncer(lister, store, nil)

	_, err := syncer.Refresh(context.Background())
	require.NoError(t, err)
	_, err = syncer.Refresh(context.Background())
	require.NoError(t, err)

	assert.Len(t, store.Lists(), 1)
	assert.Equal(t, 2, lister.calls)
}
