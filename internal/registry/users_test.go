package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/internal/models"
)

func TestUserRegistry_Create(t *testing.T) {
	reg := NewUserRegistry()

	user, err := reg.Create("Alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	t.Run("duplicate email ignores case", func(t *testing.T) {
		_, err := reg.Create("Impostor", "ALICE@Example.COM")
		assert.Equal(t, models.KindConflict, models.KindOf(err))
	})

	t.Run("invalid email", func(t *testing.T) {
		for _, email := range []string{"no-at-sign", "a@nodot", "white space@x.com", "a@@b.com"} {
			_, err := reg.Create("Bob", email)
			assert.Equal(t, models.KindInvalidInput, models.KindOf(err), email)
		}
	})

	t.Run("duplicate check runs before syntax check", func(t *testing.T) {
		// Seed an address, then repeat it: the conflict must win even
		// though a syntax failure would also apply to a fresh address.
		_, err := reg.Create("Alice again", "alice@example.com")
		assert.Equal(t, models.KindConflict, models.KindOf(err))
	})
}

func TestUserRegistry_Update(t *testing.T) {
	reg := NewUserRegistry()
	alice, err := reg.Create("Alice", "alice@example.com")
	require.NoError(t, err)
	_, err = reg.Create("Bob", "bob@example.com")
	require.NoError(t, err)

	t.Run("not found", func(t *testing.T) {
		_, err := reg.Update(99, UserUpdate{Name: strPtr("X")})
		assert.Equal(t, models.KindNotFound, models.KindOf(err))
	})

	t.Run("syntax checked before uniqueness", func(t *testing.T) {
		_, err := reg.Update(alice.ID, UserUpdate{Email: strPtr("broken")})
		assert.Equal(t, models.KindInvalidInput, models.KindOf(err))
	})

	t.Run("email conflict with another user", func(t *testing.T) {
		_, err := reg.Update(alice.ID, UserUpdate{Email: strPtr("BOB@example.com")})
		assert.Equal(t, models.KindConflict, models.KindOf(err))
	})

	t.Run("unchanged email skips validation", func(t *testing.T) {
		got, err := reg.Update(alice.ID, UserUpdate{Email: strPtr("alice@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		got, err := reg.Update(alice.ID, UserUpdate{Name: strPtr("Alice Smith")})
		require.NoError(t, err)
		assert.Equal(t, "Alice Smith", got.Name)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("email change frees the old address", func(t *testing.T) {
		_, err := reg.Update(alice.ID, UserUpdate{Email: strPtr("asmith@example.com")})
		require.NoError(t, err)
		_, err = reg.Create("New Alice", "alice@example.com")
		assert.NoError(t, err)
	})
}

func TestUserRegistry_Delete(t *testing.T) {
	reg := NewUserRegistry()
	user, err := reg.Create("Alice", "alice@example.com")
	require.NoError(t, err)

	deleted, err := reg.Delete(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, deleted.Email)
	assert.Empty(t, reg.List())

	_, err = reg.Delete(user.ID)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestUserRegistry_Reset(t *testing.T) {
	reg := NewUserRegistry()
	_, err := reg.Create("Alice", "alice@example.com")
	require.NoError(t, err)

	reg.Reset()
	assert.Empty(t, reg.List())

	user, err := reg.Create("Alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}
