package businessflow

import (
	"testing"

	"dispatch-control-api/app/dto"
	"dispatch-control-api/models"
	"dispatch-control-api/repository"
	testingutil "dispatch-control-api/testing"
	"dispatch-control-api/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessengerFlowForTest(testDB *testingutil.TestDB) MessengerFlow {
	return NewMessengerFlow(repository.NewMessengerRepository(testDB.DB))
}

func TestCreateMessenger(t *testing.T) {
	testDB := testingutil.RequireTestDB(t)
	flow := newMessengerFlowForTest(testDB)
	ctx := testingutil.CreateTestContext()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	resp, err := flow.CreateMessenger(ctx, &dto.CreateMessengerRequest{
		Name:          "Carlos Rodriguez",
		ContactNumber: "+58 412 123 4567",
	}, metadata)
	require.NoError(t, err)

	assert.Equal(t, "Messenger created successfully", resp.Message)
	assert.Equal(t, "Carlos Rodriguez", resp.Messenger.Name)
	assert.Equal(t, "+58 412 123 4567", resp.Messenger.ContactNumber)
	assert.NotEmpty(t, resp.Messenger.CreatedAt)

	id, err := uuid.Parse(resp.Messenger.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	var count int64
	require.NoError(t, testDB.DB.Model(&models.Messenger{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListMessengersNewestFirst(t *testing.T) {
	testDB := testingutil.RequireTestDB(t)
	flow := newMessengerFlowForTest(testDB)
	ctx := testingutil.CreateTestContext()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	first, err := flow.CreateMessenger(ctx, &dto.CreateMessengerRequest{
		Name: "Maria Gonzalez", ContactNumber: "+58 424 987 6543",
	}, metadata)
	require.NoError(t, err)

	second, err := flow.CreateMessenger(ctx, &dto.CreateMessengerRequest{
		Name: "Luis Perez", ContactNumber: "+58 414 555 1234",
	}, metadata)
	require.NoError(t, err)

	resp, err := flow.ListMessengers(ctx, metadata)
	require.NoError(t, err)
	require.Len(t, resp.Messengers, 2)
	assert.Equal(t, second.Messenger.ID, resp.Messengers[0].ID)
	assert.Equal(t, first.Messenger.ID, resp.Messengers[1].ID)
}

func TestGetMessenger(t *testing.T) {
	testDB := testingutil.RequireTestDB(t)
	flow := newMessengerFlowForTest(testDB)
	ctx := testingutil.CreateTestContext()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	created, err := flow.CreateMessenger(ctx, &dto.CreateMessengerRequest{
		Name: "Carlos Rodriguez", ContactNumber: "+58 412 123 4567",
	}, metadata)
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		found, err := flow.GetMessenger(ctx, created.Messenger.ID, metadata)
		require.NoError(t, err)
		assert.Equal(t, created.Messenger.ID, found.ID)
		assert.Equal(t, "Carlos Rodriguez", found.Name)
	})

	t.Run("UnknownID", func(t *testing.T) {
		_, err := flow.GetMessenger(ctx, uuid.New().String(), metadata)
		assert.True(t, IsMessengerNotFound(err))
	})

	t.Run("MalformedID", func(t *testing.T) {
		_, err := flow.GetMessenger(ctx, "not-a-uuid", metadata)
		assert.True(t, IsMessengerNotFound(err))
	})
}

func TestDeleteMessenger(t *testing.T) {
	testDB := testingutil.RequireTestDB(t)
	fixtures := testingutil.NewTestFixtures(testDB)
	flow := newMessengerFlowForTest(testDB)
	ctx := testingutil.CreateTestContext()
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	messenger, err := fixtures.CreateTestMessenger("Maria Gonzalez")
	require.NoError(t, err)

	_, err = fixtures.CreateTestDispatch(messenger, utils.UTCNow(), map[string]string{
		"4532-9812-3344-5566": models.CardTypeDebit,
		"4532-9812-3344-7788": models.CardTypeBulk,
	})
	require.NoError(t, err)

	resp, err := flow.DeleteMessenger(ctx, messenger.ID.String(), metadata)
	require.NoError(t, err)
	assert.Equal(t, "Messenger deleted successfully", resp.Message)

	// FK cascade must take dependent dispatches and items with it
	var dispatchCount, itemCount int64
	require.NoError(t, testDB.DB.Model(&models.Dispatch{}).Count(&dispatchCount).Error)
	require.NoError(t, testDB.DB.Model(&models.DispatchItem{}).Count(&itemCount).Error)
	assert.Zero(t, dispatchCount)
	assert.Zero(t, itemCount)

	t.Run("AlreadyDeleted", func(t *testing.T) {
		_, err := flow.DeleteMessenger(ctx, messenger.ID.String(), metadata)
		assert.True(t, IsMessengerNotFound(err))
	})
}
