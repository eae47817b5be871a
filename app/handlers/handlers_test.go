package handlers

import (
	"testing"

	"dispatch-control-api/app/dto"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, getValidationErrorMessage(fe))
	}
	return messages
}

func TestCreateMessengerRequestValidation(t *testing.T) {
	v := validator.New()

	t.Run("Valid", func(t *testing.T) {
		err := v.Struct(&dto.CreateMessengerRequest{
			Name:          "Carlos Rodriguez",
			ContactNumber: "+58 412 123 4567",
		})
		assert.NoError(t, err)
	})

	t.Run("MissingFields", func(t *testing.T) {
		err := v.Struct(&dto.CreateMessengerRequest{})
		messages := validationMessages(t, err)
		assert.Contains(t, messages, "Name is required")
		assert.Contains(t, messages, "ContactNumber is required")
	})
}

func TestCreateDispatchRequestValidation(t *testing.T) {
	v := validator.New()

	valid := func() *dto.CreateDispatchRequest {
		return &dto.CreateDispatchRequest{
			MessengerID: "550e8400-e29b-41d4-a716-446655440001",
			Items: []dto.DispatchItemDTO{
				{CardNumber: "4532-9812-3344-5566", CardType: "debit"},
			},
		}
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, v.Struct(valid()))
	})

	t.Run("MalformedMessengerID", func(t *testing.T) {
		req := valid()
		req.MessengerID = "not-a-uuid"
		messages := validationMessages(t, v.Struct(req))
		assert.Contains(t, messages, "MessengerID must be a valid UUID")
	})

	t.Run("EmptyItems", func(t *testing.T) {
		req := valid()
		req.Items = []dto.DispatchItemDTO{}
		messages := validationMessages(t, v.Struct(req))
		assert.Contains(t, messages, "Items must have at least 1 entries or characters")
	})

	t.Run("UnknownCardType", func(t *testing.T) {
		req := valid()
		req.Items[0].CardType = "credit"
		messages := validationMessages(t, v.Struct(req))
		assert.Contains(t, messages, "CardType must be one of: bulk debit tracking")
	})

	t.Run("MissingCardNumber", func(t *testing.T) {
		req := valid()
		req.Items[0].CardNumber = ""
		messages := validationMessages(t, v.Struct(req))
		assert.Contains(t, messages, "CardNumber is required")
	})
}
