package patterns

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repositories returns a fresh instance of every backend.
func repositories(t *testing.T) map[string]UserRepository {
	t.Helper()
	ctx := context.Background()

	sqliteRepo, err := OpenSQLiteUserRepository(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqliteRepo.Close() })

	jsonRepo, err := OpenJSONFileUserRepository(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)

	return map[string]UserRepository{
		"Memory": NewMemoryUserRepository(),
		"SQLite": sqliteRepo,
		"JSON":   jsonRepo,
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			alice := NewUser("Alice", "alice@example.com")
			bob := NewUser("Bob", "bob@example.com")
			require.NoError(t, repo.Save(ctx, alice))
			require.NoError(t, repo.Save(ctx, bob))
			assert.Equal(t, int64(1), alice.ID)
			assert.Equal(t, int64(2), bob.ID)

			found, err := repo.FindByID(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, "Alice", found.Name)
			assert.WithinDuration(t, alice.CreatedAt, found.CreatedAt, time.Millisecond)

			found, err = repo.FindByEmail(ctx, "bob@example.com")
			require.NoError(t, err)
			assert.Equal(t, int64(2), found.ID)

			_, err = repo.FindByID(ctx, 99)
			assert.ErrorIs(t, err, ErrUserNotFound)
			_, err = repo.FindByEmail(ctx, "nobody@example.com")
			assert.ErrorIs(t, err, ErrUserNotFound)

			dup := NewUser("Alice Again", "alice@example.com")
			assert.ErrorIs(t, repo.Save(ctx, dup), ErrDuplicateEmail)

			alice.Name = "Alice Smith"
			require.NoError(t, repo.Save(ctx, alice))
			byName, err := repo.FindByName(ctx, "Alice Smith")
			require.NoError(t, err)
			require.Len(t, byName, 1)
			assert.Equal(t, int64(1), byName[0].ID)

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 2)

			deleted, err := repo.Delete(ctx, 1)
			require.NoError(t, err)
			assert.True(t, deleted)
			deleted, err = repo.Delete(ctx, 1)
			require.NoError(t, err)
			assert.False(t, deleted)

			carol := NewUser("Carol", "carol@example.com")
			require.NoError(t, repo.Save(ctx, carol))
			assert.Equal(t, int64(3), carol.ID, "ids are never reused")
		})
	}
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(NewMemoryUserRepository())

	u, err := svc.RegisterUser(ctx, "  Alice  ", "Alice@Example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)

	dup, err := svc.RegisterUser(ctx, "Other", "ALICE@example.com")
	assert.NoError(t, err)
	assert.Nil(t, dup, "duplicate email yields no user")

	_, err = svc.RegisterUser(ctx, "   ", "x@example.com")
	assert.ErrorIs(t, err, ErrInvalidUser)
	_, err = svc.RegisterUser(ctx, "Bob", "bob-at-example")
	assert.ErrorIs(t, err, ErrInvalidUser)

	bob, err := svc.RegisterUser(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, bob.ID, "", "alice@example.com")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	updated, err := svc.UpdateUser(ctx, bob.ID, "Robert", "")
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)

	got, err := svc.GetUserByEmail(ctx, "BOB@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Robert", got.Name)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestJSONFileUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("New File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		repo, err := OpenJSONFileUserRepository(path)
		require.NoError(t, err)
		assert.Equal(t, 0, repo.Len())
		assert.Equal(t, int64(1), repo.NextID())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"users": [], "next_id": 1}`, string(raw))
	})

	t.Run("Existing File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte(aliceStore), 0644))

		repo, err := OpenJSONFileUserRepository(path)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.Len())
		assert.Equal(t, int64(2), repo.NextID())

		alice, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC), alice.CreatedAt)
	})

	for name, content := range map[string]string{
		"Corrupted File":  "{invalid json",
		"Truncated File":  `{"users": [`,
		"Empty File":      "",
		"Whitespace File": "\n  \n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "users.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			repo, err := OpenJSONFileUserRepository(path)
			require.NoError(t, err)
			assert.Equal(t, 0, repo.Len())
			assert.Equal(t, int64(1), repo.NextID())
		})
	}

	for name, content := range map[string]string{
		"Fractional ID":   `{"users": [{"id": 1.0, "name": "Alice", "email": "alice@example.com"}], "next_id": 2}`,
		"Numeric Created": `{"users": [{"id": 1, "name": "Alice", "email": "alice@example.com", "created_at": 123}], "next_id": 2}`,
	} {
		t.Run("Mistyped "+name+" Is Kept", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "users.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			_, err := OpenJSONFileUserRepository(path)
			var typeErr *json.UnmarshalTypeError
			assert.ErrorAs(t, err, &typeErr)

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, content, string(raw), "a well-formed store is never overwritten")
		})
	}

	t.Run("Next ID Follows Highest ID", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"users": [{"id": 7, "name": "G", "email": "g@example.com"}], "next_id": 3}`), 0644))

		repo, err := OpenJSONFileUserRepository(path)
		require.NoError(t, err)
		assert.Equal(t, int64(8), repo.NextID())

		u := NewUser("H", "h@example.com")
		require.NoError(t, repo.Save(ctx, u))
		assert.Equal(t, int64(8), u.ID)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		var doc struct {
			NextID int64 `json:"next_id"`
		}
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, int64(9), doc.NextID)
	})
}
