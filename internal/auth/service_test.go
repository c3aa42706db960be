package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditpack/auditpack/internal/common"
	"github.com/auditpack/auditpack/internal/entity"
	"github.com/auditpack/auditpack/internal/session"
	"github.com/auditpack/auditpack/internal/state"
)

type fakeUsers struct {
	user     *entity.User
	password string
	err      error
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*entity.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if f.user == nil || f.user.Email != email {
		return nil, "", common.NewAppError("USER_NOT_FOUND", "no account", common.ErrNotFound)
	}
	return f.user, f.password, nil
}

type fakeLists struct {
	lists []*entity.InspectionList
	calls int
}

func (f *fakeLists) ListAll(ctx context.Context) ([]*entity.InspectionList, error) {
	f.calls++
	return f.lists, nil
}
func (f *fakeLists) GetByID(ctx context.Context, id uuid.UUID) (*entity.InspectionList, error) {
	return nil, common.NewAppError("LIST_NOT_FOUND", "missing", common.ErrNotFound)
}
func (f *fakeLists) Create(ctx context.Context, list *entity.InspectionList) error { return nil }
func (f *fakeLists) CloseList(ctx context.Context, id uuid.UUID) error             { return nil }
func (f *fakeLists) ReplaceEntries(ctx context.Context, listID uuid.UUID, entries []entity.ProductEntry, expectedRevision int64) (int64, error) {
	return 0, nil
}
func (f *fakeLists) HasEntryRoot(ctx context.Context, root string) (bool, error) {
	return false, nil
}

func newTestService(t *testing.T, users *fakeUsers) (*Service, *state.Store, *fakeLists) {
	t.Helper()
	sessions, err := session.Open(filepath.Join(t.TempDir(), "session.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	store := state.NewStore()
	lists := &fakeLists{lists: []*entity.InspectionList{{ID: uuid.New(), Name: "Lista"}}}
	syncer := state.NewSyncer(lists, store, nil)
	return NewService(users, sessions, syncer, nil), store, lists
}

func inspector() *entity.User {
	return &entity.User{
		ID:        uuid.New(),
		Name:      "Auditor Teste",
		Email:     "auditor@demo.com",
		Role:      "usuario",
		CreatedAt: time.Now().UTC(),
	}
}

func TestLogin_Success(t *testing.T) {
	u := inspector()
	svc, store, lists := newTestService(t, &fakeUsers{user: u, password: "segredo"})

	sess, err := svc.Login(context.Background(), "Auditor@Demo.com", "segredo")
	require.NoError(t, err)
	assert.True(t, sess.Valid())
	assert.Equal(t, u.ID, sess.User.ID)

	// Login triggers the initial population.
	assert.Equal(t, 1, lists.calls)
	assert.Len(t, store.Lists(), 1)

	// And the session survives a restart.
	resumed, found, err := svc.Resume(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, u.ID, resumed.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeUsers{user: inspector(), password: "segredo"})

	_, err := svc.Login(context.Background(), "auditor@demo.com", "errado")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnauthorized))

	_, found, err := svc.Resume(context.Background())
	require.NoError(t, err)
	assert.False(t, found, "no session persisted on rejected login")
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeUsers{})

	_, err := svc.Login(context.Background(), "ninguem@demo.com", "segredo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnauthorized), "unknown account is indistinguishable from a bad password")
}

func TestLogin_MissingCredentials(t *testing.T) {
	svc, _, lists := newTestService(t, &fakeUsers{user: inspector(), password: "segredo"})

	_, err := svc.Login(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Equal(t, 0, lists.calls)
}

func TestLogout_ClearsSession(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeUsers{user: inspector(), password: "segredo"})

	_, err := svc.Login(context.Background(), "auditor@demo.com", "segredo")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background()))

	_, found, err := svc.Resume(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}
