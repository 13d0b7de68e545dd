package repo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval/tripbook/backend/internal/domain"
	"github.com/mkoval/tripbook/backend/internal/repo"
)

func user(id, email string) domain.User {
	return domain.User{ID: id, FirstName: "First", LastName: "Last", Email: email}
}

func TestUsers_InsertAndFindByID(t *testing.T) {
	c := repo.NewUsers(nil)
	c.Insert(user("u1", "a@x.com"))

	got, err := c.FindByID("u1")

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestUsers_FindByID_Unknown(t *testing.T) {
	c := repo.NewUsers(nil)

	_, err := c.FindByID("nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Email comparison is case-sensitive, matching how emails are stored.
func TestUsers_FindByEmail_CaseSensitive(t *testing.T) {
	c := repo.NewUsers(nil)
	c.Insert(user("u1", "a@x.com"))

	_, err := c.FindByEmail("A@X.COM")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := c.FindByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func TestUsers_Snapshot_PreservesInsertionOrder(t *testing.T) {
	c := repo.NewUsers(nil)
	c.Insert(user("u1", "a@x.com"))
	c.Insert(user("u2", "b@x.com"))
	c.Insert(user("u3", "c@x.com"))

	snap := c.Snapshot()

	require.Len(t, snap, 3)
	assert.Equal(t, []string{"u1", "u2", "u3"}, []string{snap[0].ID, snap[1].ID, snap[2].ID})
}

// A snapshot taken before a mutation must restore the collection to that
// exact state, discarding the mutation.
func TestUsers_Restore_RollsBackInsert(t *testing.T) {
	c := repo.NewUsers([]domain.User{user("u1", "a@x.com")})
	snap := c.Snapshot()

	c.Insert(user("u2", "b@x.com"))
	c.Restore(snap)

	_, err := c.FindByID("u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, c.Snapshot(), 1)
}

// Mutating a snapshot must not affect the collection it was taken from.
func TestUsers_Snapshot_Detached(t *testing.T) {
	c := repo.NewUsers([]domain.User{user("u1", "a@x.com")})

	snap := c.Snapshot()
	snap[0].Email = "tampered@x.com"

	got, err := c.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
}
