package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskhive/taskhive/internal/constants"
	"github.com/taskhive/taskhive/internal/model"
	"gorm.io/gorm"
)

func TestTaskRepositoryOwnershipScoping(t *testing.T) {
	db := testDB(t)
	repo := NewTaskRepository(db)
	ctx := testCtx()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	task := &model.Task{Description: "alice task", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, task))

	t.Run("owner can read", func(t *testing.T) {
		got, err := repo.GetByIDAndOwner(ctx, task.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice task", got.Description)
	})

	t.Run("foreign-owned reads like missing", func(t *testing.T) {
		_, err := repo.GetByIDAndOwner(ctx, task.ID, bob.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("foreign-owned update writes nothing", func(t *testing.T) {
		err := repo.Update(ctx, task.ID, bob.ID, map[string]interface{}{"completed": true})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		got, err := repo.GetByIDAndOwner(ctx, task.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, got.Completed)
	})

	t.Run("foreign-owned delete removes nothing", func(t *testing.T) {
		err := repo.DeleteByIDAndOwner(ctx, task.ID, bob.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		_, err = repo.GetByIDAndOwner(ctx, task.ID, alice.ID)
		assert.NoError(t, err)
	})

	t.Run("owner delete removes the task", func(t *testing.T) {
		require.NoError(t, repo.DeleteByIDAndOwner(ctx, task.ID, alice.ID))

		_, err := repo.GetByIDAndOwner(ctx, task.ID, alice.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestTaskRepositoryListModifiers(t *testing.T) {
	db := testDB(t)
	repo := NewTaskRepository(db)
	ctx := testCtx()

	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	seed := []model.Task{
		{Description: "a", Completed: true, UserID: owner.ID},
		{Description: "b", Completed: false, UserID: owner.ID},
		{Description: "c", Completed: true, UserID: owner.ID},
		{Description: "d", Completed: false, UserID: owner.ID},
		{Description: "z", Completed: true, UserID: other.ID},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	t.Run("list is scoped to the owner", func(t *testing.T) {
		tasks, err := repo.ListByOwner(ctx, owner.ID, constants.ListParams{Limit: 100})
		require.NoError(t, err)
		assert.Len(t, tasks, 4)
		for _, task := range tasks {
			assert.Equal(t, owner.ID, task.UserID)
		}
	})

	t.Run("completed filter", func(t *testing.T) {
		completed := true
		tasks, err := repo.ListByOwner(ctx, owner.ID, constants.ListParams{
			Completed: &completed,
			Limit:     100,
		})
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
		for _, task := range tasks {
			assert.True(t, task.Completed)
		}
	})

	t.Run("limit and skip paginate", func(t *testing.T) {
		page, err := repo.ListByOwner(ctx, owner.ID, constants.ListParams{
			Limit:     2,
			Skip:      2,
			SortField: "description",
		})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "c", page[0].Description)
		assert.Equal(t, "d", page[1].Description)
	})

	t.Run("sort descending", func(t *testing.T) {
		tasks, err := repo.ListByOwner(ctx, owner.ID, constants.ListParams{
			Limit:     100,
			SortField: "description",
			SortDesc:  true,
		})
		require.NoError(t, err)
		require.Len(t, tasks, 4)
		assert.Equal(t, "d", tasks[0].Description)
		assert.Equal(t, "a", tasks[3].Description)
	})

	t.Run("unknown sort field falls back to created_at", func(t *testing.T) {
		tasks, err := repo.ListByOwner(ctx, owner.ID, constants.ListParams{
			Limit:     100,
			SortField: "password; DROP TABLE tasks",
		})
		require.NoError(t, err)
		assert.Len(t, tasks, 4)
	})
}
