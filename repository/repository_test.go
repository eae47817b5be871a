package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch-control-api/models"
	testingutil "dispatch-control-api/testing"
	"dispatch-control-api/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessengerRepository(t *testing.T) {
	testDB := testingutil.RequireTestDB(t)
	repo := NewMessengerRepository(testDB.DB)
	ctx := testingutil.CreateTestContext()

	messenger := &models.Messenger{
		ID:            uuid.New(),
		Name:          "Carlos Rodriguez",
		ContactNumber: "+58 412 123 4567",
		CreatedAt:     utils.UTCNow(),
	}
	require.NoError(t, repo.Save(ctx, messenger))

	t.Run("ByID", func(t *testing.T) {
		found, err := repo.ByID(ctx, messenger.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, messenger.Name, found.Name)
		assert.Equal(t, messenger.ContactNumber, found.ContactNumber)
	})

	t.Run("ByIDMissingReturnsNil", func(t *testing.T) {
		found, err := repo.ByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("ByFilterName", func(t *testing.T) {
		name := "Carlos Rodriguez"
		rows, err := repo.ByFilter(ctx, models.MessengerFilter{Name: &name}, "", 0, 0)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, messenger.ID, rows[0].ID)
	})

	t.Run("CountAndExists", func(t *testing.T) {
		count, err := repo.Count(ctx, models.MessengerFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		missing := "Nobody"
		exists, err := repo.Exists(ctx, models.MessengerFilter{Name: &missing})
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Delete", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, messenger.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, messenger.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestDispatchItemsByDispatchIDs(t *testing.T) {
	testDB := testingutil.RequireTestDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	repo := NewDispatchItemRepository(testDB.DB)
	ctx := testingutil.CreateTestContext()

	messenger, err := fixtures.CreateTestMessenger("Maria Gonzalez")
	require.NoError(t, err)

	day := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	first, err := fixtures.CreateTestDispatch(messenger, day, map[string]string{
		"4532-0001": models.CardTypeDebit,
		"4532-0002": models.CardTypeBulk,
	})
	require.NoError(t, err)
	second, err := fixtures.CreateTestDispatch(messenger, day.Add(time.Hour), map[string]string{
		"4532-0003": models.CardTypeTracking,
	})
	require.NoError(t, err)

	grouped, err := repo.ByDispatchIDs(ctx, []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)
	require.Len(t, grouped, 2)
	assert.Len(t, grouped[first.ID], 2)
	assert.Len(t, grouped[second.ID], 1)
	assert.Equal(t, "4532-0003", grouped[second.ID][0].CardNumber)

	t.Run("EmptyInput", func(t *testing.T) {
		grouped, err := repo.ByDispatchIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, grouped)
	})

	t.Run("ListByDateNewestFirst", func(t *testing.T) {
		dispatchRepo := NewDispatchRepository(testDB.DB)
		rows, err := dispatchRepo.ListByDate(ctx, "2026-03-15")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, second.ID, rows[0].ID)
		assert.Equal(t, first.ID, rows[1].ID)
	})
}

func TestWithTransaction(t *testing.T) {
	testDB := testingutil.RequireTestDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	dispatchRepo := NewDispatchRepository(testDB.DB)
	itemRepo := NewDispatchItemRepository(testDB.DB)
	ctx := testingutil.CreateTestContext()

	messenger, err := fixtures.CreateTestMessenger("Luis Perez")
	require.NoError(t, err)

	newDispatch := func() *models.Dispatch {
		now := utils.UTCNow()
		return &models.Dispatch{
			ID:            uuid.New(),
			MessengerID:   messenger.ID,
			MessengerName: messenger.Name,
			TotalCards:    1,
			CreatedAt:     now,
			Date:          now.Format(models.DateLayout),
		}
	}

	t.Run("Commit", func(t *testing.T) {
		dispatch := newDispatch()
		err := WithTransaction(ctx, testDB.DB, func(txCtx context.Context) error {
			if err := dispatchRepo.Save(txCtx, dispatch); err != nil {
				return err
			}
			return itemRepo.Save(txCtx, &models.DispatchItem{
				ID:         uuid.New(),
				DispatchID: dispatch.ID,
				CardNumber: "4532-0004",
				CardType:   models.CardTypeDebit,
			})
		})
		require.NoError(t, err)

		found, err := dispatchRepo.ByID(ctx, dispatch.ID)
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		dispatch := newDispatch()
		boom := errors.New("boom")
		err := WithTransaction(ctx, testDB.DB, func(txCtx context.Context) error {
			if err := dispatchRepo.Save(txCtx, dispatch); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		found, err := dispatchRepo.ByID(ctx, dispatch.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
