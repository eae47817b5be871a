package handlers

import (
	"context"
	"log"
	"time"

	"dispatch-control-api/app/dto"
	businessflow "dispatch-control-api/business_flow"
	"dispatch-control-api/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// MessengerHandlerInterface defines the contract for messenger handlers
type MessengerHandlerInterface interface {
	CreateMessenger(c fiber.Ctx) error
	ListMessengers(c fiber.Ctx) error
	GetMessenger(c fiber.Ctx) error
	DeleteMessenger(c fiber.Ctx) error
}

// MessengerHandler handles messenger-related HTTP requests
type MessengerHandler struct {
	flow      businessflow.MessengerFlow
	validator *validator.Validate
}

// NewMessengerHandler creates a new messenger handler
func NewMessengerHandler(flow businessflow.MessengerFlow) MessengerHandlerInterface {
	return &MessengerHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *MessengerHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *MessengerHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateMessenger registers a new messenger
// @Summary Create Messenger
// @Tags Messengers
// @Accept json
// @Produce json
// @Param request body dto.CreateMessengerRequest true "Messenger data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateMessengerResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/messengers [post]
func (h *MessengerHandler) CreateMessenger(c fiber.Ctx) error {
	var req dto.CreateMessengerRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.flow.CreateMessenger(h.createRequestContext(c, "/api/messengers"), &req, metadata)
	if err != nil {
		log.Println("Messenger creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Messenger creation failed", "CREATE_MESSENGER_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Messenger created successfully", result)
}

// ListMessengers returns all registered messengers
// @Summary List Messengers
// @Tags Messengers
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListMessengersResponse}
// @Failure 500 {object} dto.APIResponse
// @Router /api/messengers [get]
func (h *MessengerHandler) ListMessengers(c fiber.Ctx) error {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.flow.ListMessengers(h.createRequestContext(c, "/api/messengers"), metadata)
	if err != nil {
		log.Println("List messengers failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list messengers", "LIST_MESSENGERS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Messengers retrieved successfully", result)
}

// GetMessenger returns one messenger by ID
// @Summary Get Messenger
// @Tags Messengers
// @Produce json
// @Param id path string true "Messenger ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessengerDTO}
// @Failure 404 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/messengers/{id} [get]
func (h *MessengerHandler) GetMessenger(c fiber.Ctx) error {
	messengerID := c.Params("id")
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.flow.GetMessenger(h.createRequestContext(c, "/api/messengers/:id"), messengerID, metadata)
	if err != nil {
		if businessflow.IsMessengerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Messenger not found", "MESSENGER_NOT_FOUND", nil)
		}
		log.Println("Get messenger failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get messenger", "GET_MESSENGER_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Messenger retrieved successfully", result)
}

// DeleteMessenger removes a messenger and, by storage cascade, its dispatches
// @Summary Delete Messenger
// @Tags Messengers
// @Produce json
// @Param id path string true "Messenger ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteMessengerResponse}
// @Failure 404 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/messengers/{id} [delete]
func (h *MessengerHandler) DeleteMessenger(c fiber.Ctx) error {
	messengerID := c.Params("id")
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.flow.DeleteMessenger(h.createRequestContext(c, "/api/messengers/:id"), messengerID, metadata)
	if err != nil {
		if businessflow.IsMessengerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Messenger not found", "MESSENGER_NOT_FOUND", nil)
		}
		log.Println("Delete messenger failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete messenger", "DELETE_MESSENGER_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Messenger deleted successfully", result)
}

func (h *MessengerHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
