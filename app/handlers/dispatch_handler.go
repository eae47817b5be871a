package handlers

import (
	"context"
	"log"
	"time"

	"dispatch-control-api/app/dto"
	businessflow "dispatch-control-api/business_flow"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// DispatchHandlerInterface defines the contract for dispatch handlers
type DispatchHandlerInterface interface {
	CreateDispatch(c fiber.Ctx) error
	ListDispatches(c fiber.Ctx) error
	ListTodayDispatches(c fiber.Ctx) error
}

// DispatchHandler handles dispatch-related HTTP requests
type DispatchHandler struct {
	flow      businessflow.DispatchFlow
	validator *validator.Validate
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(flow businessflow.DispatchFlow) DispatchHandlerInterface {
	return &DispatchHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *DispatchHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *DispatchHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateDispatch registers a batch of cards for a messenger
// @Summary Create Dispatch
// @Tags Dispatches
// @Accept json
// @Produce json
// @Param request body dto.CreateDispatchRequest true "Dispatch data"
// @Success 201 {object} dto.APIResponse{data=dto.CreateDispatchResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /api/dispatches [post]
func (h *DispatchHandler) CreateDispatch(c fiber.Ctx) error {
	var req dto.CreateDispatchRequest
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

	result, err := h.flow.CreateDispatch(h.createRequestContext(c, "/api/dispatches"), &req, metadata)
	if err != nil {
		if businessflow.IsMessengerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Messenger not found", "MESSENGER_NOT_FOUND", nil)
		}
		if businessflow.IsDispatchItemsMissing(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Dispatch requires at least one item", "DISPATCH_ITEMS_MISSING", nil)
		}
		log.Println("Dispatch creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Dispatch creation failed", "CREATE_DISPATCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Dispatch created successfully", result)
}

// ListDispatches returns dispatches filtered by optional date and messenger_id
// @Summary List Dispatches
// @Tags Dispatches
// @Produce json
// @Param date query string false "Calendar date YYYY-MM-DD"
// @Param messenger_id query string false "Messenger ID"
// @Success 200 {object} dto.APIResponse{data=dto.ListDispatchesResponse}
// @Failure 500 {object} dto.APIResponse
// @Router /api/dispatches [get]
func (h *DispatchHandler) ListDispatches(c fiber.Ctx) error {
	date := c.Query("date")
	messengerID := c.Query("messenger_id")
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.flow.ListDispatches(h.createRequestContext(c, "/api/dispatches"), date, messengerID, metadata)
	if err != nil {
		if businessflow.IsMessengerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Messenger not found", "MESSENGER_NOT_FOUND", nil)
		}
		log.Println("List dispatches failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list dispatches", "LIST_DISPATCHES_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Dispatches retrieved successfully", result)
}

// ListTodayDispatches returns all dispatches for the current UTC date
// @Summary List Today's Dispatches
// @Tags Dispatches
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListDispatchesResponse}
// @Failure 500 {object} dto.APIResponse
// @Router /api/dispatches/today [get]
func (h *DispatchHandler) ListTodayDispatches(c fiber.Ctx) error {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.flow.ListTodayDispatches(h.createRequestContext(c, "/api/dispatches/today"), metadata)
	if err != nil {
		log.Println("List today dispatches failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list today's dispatches", "LIST_DISPATCHES_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Today's dispatches retrieved successfully", result)
}

func (h *DispatchHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
