// Package businessflow contains use cases for dispatch management
package businessflow

import (
	"context"

	"dispatch-control-api/app/dto"
	"dispatch-control-api/models"
	"dispatch-control-api/repository"
	"dispatch-control-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DispatchFlow defines operations for registering and listing dispatches
type DispatchFlow interface {
	CreateDispatch(ctx context.Context, req *dto.CreateDispatchRequest, metadata *ClientMetadata) (*dto.CreateDispatchResponse, error)
	ListDispatches(ctx context.Context, date, messengerID string, metadata *ClientMetadata) (*dto.ListDispatchesResponse, error)
	ListTodayDispatches(ctx context.Context, metadata *ClientMetadata) (*dto.ListDispatchesResponse, error)
}

type DispatchFlowImpl struct {
	dispatchRepo  repository.DispatchRepository
	itemRepo      repository.DispatchItemRepository
	messengerRepo repository.MessengerRepository
	db            *gorm.DB
}

func NewDispatchFlow(
	dispatchRepo repository.DispatchRepository,
	itemRepo repository.DispatchItemRepository,
	messengerRepo repository.MessengerRepository,
	db *gorm.DB,
) DispatchFlow {
	return &DispatchFlowImpl{
		dispatchRepo:  dispatchRepo,
		itemRepo:      itemRepo,
		messengerRepo: messengerRepo,
		db:            db,
	}
}

// CreateDispatch registers a batch of cards for a messenger. The parent row and
// its items are written in one transaction so a failed item insert never leaves
// a dispatch claiming more cards than were persisted.
func (f *DispatchFlowImpl) CreateDispatch(ctx context.Context, req *dto.CreateDispatchRequest, metadata *ClientMetadata) (*dto.CreateDispatchResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrDispatchItemsMissing
	}

	messengerID, err := uuid.Parse(req.MessengerID)
	if err != nil {
		return nil, ErrMessengerNotFound
	}

	messenger, err := f.messengerRepo.ByID(ctx, messengerID)
	if err != nil {
		return nil, NewBusinessError("CREATE_DISPATCH_FAILED", "Failed to resolve messenger", err)
	}
	if messenger == nil {
		return nil, ErrMessengerNotFound
	}

	now := utils.UTCNow()
	dispatch := models.Dispatch{
		ID:            uuid.New(),
		MessengerID:   messenger.ID,
		MessengerName: messenger.Name,
		TotalCards:    len(req.Items),
		CreatedAt:     now,
		Date:          now.Format(models.DateLayout),
	}

	items := make([]*models.DispatchItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, &models.DispatchItem{
			ID:         uuid.New(),
			DispatchID: dispatch.ID,
			CardNumber: item.CardNumber,
			CardType:   item.CardType,
		})
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.dispatchRepo.Save(txCtx, &dispatch); err != nil {
			return err
		}
		return f.itemRepo.SaveBatch(txCtx, items)
	})
	if err != nil {
		return nil, NewBusinessError("CREATE_DISPATCH_FAILED", "Failed to create dispatch", err)
	}

	for _, item := range items {
		dispatch.Items = append(dispatch.Items, *item)
	}

	return &dto.CreateDispatchResponse{
		Message:  "Dispatch created successfully",
		Dispatch: ToDispatchDTO(dispatch),
	}, nil
}

// ListDispatches returns dispatches filtered by optional date and messenger ID,
// newest first, with items attached
func (f *DispatchFlowImpl) ListDispatches(ctx context.Context, date, messengerID string, metadata *ClientMetadata) (*dto.ListDispatchesResponse, error) {
	filter := models.DispatchFilter{}
	if date != "" {
		filter.Date = &date
	}
	if messengerID != "" {
		parsed, err := uuid.Parse(messengerID)
		if err != nil {
			return nil, ErrMessengerNotFound
		}
		filter.MessengerID = &parsed
	}

	rows, err := f.dispatchRepo.ByFilter(ctx, filter, "created_at DESC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("LIST_DISPATCHES_FAILED", "Failed to list dispatches", err)
	}

	dispatches, err := f.attachItems(ctx, rows)
	if err != nil {
		return nil, NewBusinessError("LIST_DISPATCHES_FAILED", "Failed to load dispatch items", err)
	}

	return &dto.ListDispatchesResponse{
		Message:    "Dispatches retrieved successfully",
		Dispatches: dispatches,
	}, nil
}

// ListTodayDispatches returns all dispatches for the current UTC calendar date
func (f *DispatchFlowImpl) ListTodayDispatches(ctx context.Context, metadata *ClientMetadata) (*dto.ListDispatchesResponse, error) {
	today := utils.UTCNowFormat(models.DateLayout)
	return f.ListDispatches(ctx, today, "", metadata)
}

// attachItems loads items for the given dispatches in one query and converts
// everything to API shapes
func (f *DispatchFlowImpl) attachItems(ctx context.Context, rows []*models.Dispatch) ([]dto.DispatchDTO, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, d := range rows {
		ids = append(ids, d.ID)
	}

	itemsByDispatch, err := f.itemRepo.ByDispatchIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	dispatches := make([]dto.DispatchDTO, 0, len(rows))
	for _, d := range rows {
		d.Items = itemsByDispatch[d.ID]
		dispatches = append(dispatches, ToDispatchDTO(*d))
	}
	return dispatches, nil
}
