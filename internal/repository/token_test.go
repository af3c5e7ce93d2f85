package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTokenRepositorySessionLifecycle(t *testing.T) {
	db := testDB(t)
	repo := NewTokenRepository(db)
	ctx := testCtx()

	user := seedUser(t, db, "sessions@example.com")

	require.NoError(t, repo.Add(ctx, user.ID, "token-one"))
	require.NoError(t, repo.Add(ctx, user.ID, "token-two"))

	t.Run("live tokens exist", func(t *testing.T) {
		for _, token := range []string{"token-one", "token-two"} {
			live, err := repo.Exists(ctx, user.ID, token)
			require.NoError(t, err)
			assert.True(t, live, token)
		}
	})

	t.Run("unknown token is not live", func(t *testing.T) {
		live, err := repo.Exists(ctx, user.ID, "never-issued")
		require.NoError(t, err)
		assert.False(t, live)
	})

	t.Run("token is bound to its user", func(t *testing.T) {
		live, err := repo.Exists(ctx, user.ID+1, "token-one")
		require.NoError(t, err)
		assert.False(t, live)
	})

	t.Run("remove revokes exactly one session", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, user.ID, "token-one"))

		live, err := repo.Exists(ctx, user.ID, "token-one")
		require.NoError(t, err)
		assert.False(t, live)

		live, err = repo.Exists(ctx, user.ID, "token-two")
		require.NoError(t, err)
		assert.True(t, live, "other sessions must survive")
	})

	t.Run("removing an already revoked session reports not found", func(t *testing.T) {
		err := repo.Remove(ctx, user.ID, "token-one")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("remove all clears every session", func(t *testing.T) {
		require.NoError(t, repo.Add(ctx, user.ID, "token-three"))
		require.NoError(t, repo.RemoveAll(ctx, user.ID))

		for _, token := range []string{"token-two", "token-three"} {
			live, err := repo.Exists(ctx, user.ID, token)
			require.NoError(t, err)
			assert.False(t, live, token)
		}
	})
}
