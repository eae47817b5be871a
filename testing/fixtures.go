// Package testing provides test utilities and database setup for testing the dispatch backend
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"dispatch-control-api/models"
	"dispatch-control-api/utils"

	"github.com/google/uuid"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestMessenger creates a messenger with a random contact number
func (tf *TestFixtures) CreateTestMessenger(name string) (*models.Messenger, error) {
	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)

	messenger := &models.Messenger{
		ID:            uuid.New(),
		Name:          name,
		ContactNumber: fmt.Sprintf("+989%s", randomDigits),
		CreatedAt:     utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(messenger).Error; err != nil {
		return nil, fmt.Errorf("failed to create test messenger: %w", err)
	}

	return messenger, nil
}

// CreateTestDispatch creates a dispatch with items for the given messenger.
// cardNumbers maps card number to card type.
func (tf *TestFixtures) CreateTestDispatch(messenger *models.Messenger, createdAt time.Time, cards map[string]string) (*models.Dispatch, error) {
	createdAt = createdAt.UTC()

	dispatch := &models.Dispatch{
		ID:            uuid.New(),
		MessengerID:   messenger.ID,
		MessengerName: messenger.Name,
		TotalCards:    len(cards),
		CreatedAt:     createdAt,
		Date:          createdAt.Format(models.DateLayout),
	}

	if err := tf.DB.DB.Create(dispatch).Error; err != nil {
		return nil, fmt.Errorf("failed to create test dispatch: %w", err)
	}

	for cardNumber, cardType := range cards {
		item := &models.DispatchItem{
			ID:         uuid.New(),
			DispatchID: dispatch.ID,
			CardNumber: cardNumber,
			CardType:   cardType,
		}
		if err := tf.DB.DB.Create(item).Error; err != nil {
			return nil, fmt.Errorf("failed to create test dispatch item: %w", err)
		}
		dispatch.Items = append(dispatch.Items, *item)
	}

	return dispatch, nil
}
