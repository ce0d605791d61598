package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farm-advisor/internal/models"
)

func newTestStore(t *testing.T) *SQLiteAccountStore {
	t.Helper()
	store, err := NewSQLiteAccountStore(":memory:")
	require.NoError(t, err)
	return store
}

func TestSQLiteAccountStore_CreateAndFind(t *testing.T) {
	store := newTestStore(t)

	user := &models.User{
		Name:         "Sarvesh",
		Email:        "sarvesh@example.com",
		Phone:        "+91-9000000000",
		PasswordHash: "$2a$10$fakehash",
	}
	require.NoError(t, store.CreateUser(user))
	assert.NotZero(t, user.ID)

	found, err := store.FindUserByEmail("sarvesh@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Sarvesh", found.Name)
	assert.Equal(t, "+91-9000000000", found.Phone)
}

func TestSQLiteAccountStore_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)

	first := &models.User{Name: "A", Email: "dup@example.com", PasswordHash: "x"}
	require.NoError(t, store.CreateUser(first))

	second := &models.User{Name: "B", Email: "dup@example.com", PasswordHash: "y"}
	err := store.CreateUser(second)
	assert.ErrorIs(t, err, models.ErrDuplicateAccount)
}

func TestSQLiteAccountStore_FindUnknownEmail(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindUserByEmail("ghost@example.com")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestSQLiteAccountStore_ActivityLog(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AppendActivity("A", "a@example.com", "1", models.ActionLogin))
	require.NoError(t, store.AppendActivity("B", "b@example.com", "2", models.ActionLogin))
	require.NoError(t, store.AppendActivity("A", "a@example.com", "1", models.ActionLogout))

	entries, err := store.ListActivity(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.Timestamp.IsZero())
		assert.Contains(t, []string{models.ActionLogin, models.ActionLogout}, e.Action)
	}

	limited, err := store.ListActivity(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
