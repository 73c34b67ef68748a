package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/niru8756/internal-portal-sub003/internal/audit"
	resourceerrors "github.com/niru8756/internal-portal-sub003/internal/resource/errors"
	"github.com/niru8756/internal-portal-sub003/internal/shared/contextutil"
	"github.com/niru8756/internal-portal-sub003/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const assetTagCounter = "asset_tag"

//go:generate mockgen -source=resource_service.go -destination=mock/resource_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateResourceRequest) (ResourceResponse, error)
	GetAll(ctx context.Context, resourceType string, offset, limit int) ([]ResourceResponse, int64, error)
	GetByID(ctx context.Context, id string) (ResourceResponse, error)
	Update(ctx context.Context, id string, req UpdateResourceRequest) (ResourceResponse, error)
	Delete(ctx context.Context, id string) error

	CreateItem(ctx context.Context, resourceID string, req CreateResourceItemRequest) (ResourceItemResponse, error)
	GetItems(ctx context.Context, resourceID string) ([]ResourceItemResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counters counter.Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counters counter.Repository,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("resource.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("resource.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counters: counters,
		recorder: recorder,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateResourceRequest) (ResourceResponse, error) {
	s.logger.Debug("create resource requested",
		zap.String("name", req.Name),
		zap.String("type", req.Type),
	)

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return ResourceResponse{}, resourceerrors.ErrInvalidResourceID
	}

	var custodianID *uuid.UUID
	if req.CustodianID != "" {
		parsed, err := uuid.Parse(req.CustodianID)
		if err != nil {
			return ResourceResponse{}, resourceerrors.ErrInvalidResourceID
		}
		custodianID = &parsed
	}

	quantity := req.TotalQuantity
	if quantity == 0 {
		quantity = 1
	}

	res := &Resource{
		ID:            uuid.New(),
		Name:          req.Name,
		Type:          req.Type,
		Category:      req.Category,
		OwnerID:       ownerID,
		CustodianID:   custodianID,
		TotalQuantity: quantity,
		Status:        StatusActive,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		s.logger.Error("create resource persist failed", zap.Error(err))
		return ResourceResponse{}, mapRepositoryError(err)
	}

	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityResource,
		EntityID:     res.ID.String(),
		ActivityType: "RESOURCE_CREATED",
		Title:        "Resource registered",
		Description:  fmt.Sprintf("%s resource %q registered", res.Type, res.Name),
		Metadata:     map[string]any{"type": res.Type, "category": res.Category},
		PerformedBy:  contextutil.GetActorID(ctx),
	})

	s.logger.Info("create resource success", zap.String("resource_id", res.ID.String()))
	return mapResourceToResponse(*res), nil
}

func (s *service) GetAll(ctx context.Context, resourceType string, offset, limit int) ([]ResourceResponse, int64, error) {
	resources, total, err := s.repo.FindAll(ctx, resourceType, offset, limit)
	if err != nil {
		s.logger.Error("get all resources failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	resp := make([]ResourceResponse, len(resources))
	for i, r := range resources {
		resp[i] = mapResourceToResponse(r)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ResourceResponse, error) {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get resource by id failed", zap.String("resource_id", id), zap.Error(err))
		return ResourceResponse{}, mapRepositoryError(err)
	}
	return mapResourceToResponse(*res), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateResourceRequest) (ResourceResponse, error) {
	s.logger.Debug("update resource requested", zap.String("resource_id", id))

	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ResourceResponse{}, mapRepositoryError(err)
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return ResourceResponse{}, resourceerrors.ErrInvalidResourceID
	}

	var custodianID *uuid.UUID
	if req.CustodianID != "" {
		parsed, err := uuid.Parse(req.CustodianID)
		if err != nil {
			return ResourceResponse{}, resourceerrors.ErrInvalidResourceID
		}
		custodianID = &parsed
	}

	oldStatus := res.Status

	res.Name = req.Name
	res.Category = req.Category
	res.OwnerID = ownerID
	res.CustodianID = custodianID
	if req.TotalQuantity > 0 {
		res.TotalQuantity = req.TotalQuantity
	}
	res.Status = req.Status

	if err := s.repo.Update(ctx, res); err != nil {
		s.logger.Error("update resource persist failed", zap.Error(err))
		return ResourceResponse{}, mapRepositoryError(err)
	}

	if oldStatus != res.Status {
		s.recorder.Audit(ctx, audit.AuditEntry{
			EntityType:   audit.EntityResource,
			EntityID:     res.ID.String(),
			ChangedBy:    contextutil.GetActorID(ctx),
			FieldChanged: "status",
			OldValue:     oldStatus,
			NewValue:     res.Status,
		})
	}

	s.logger.Info("update resource success", zap.String("resource_id", id))
	return mapResourceToResponse(*res), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete resource requested", zap.String("resource_id", id))

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete resource failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityResource,
		EntityID:     id,
		ActivityType: "RESOURCE_DELETED",
		Title:        "Resource removed",
		PerformedBy:  contextutil.GetActorID(ctx),
	})

	s.logger.Info("delete resource success", zap.String("resource_id", id))
	return nil
}

// CreateItem mendaftarkan unit fisik baru dengan asset tag dari sequence
// terpusat, supaya tag tidak pernah bentrok antar request paralel.
func (s *service) CreateItem(ctx context.Context, resourceID string, req CreateResourceItemRequest) (ResourceItemResponse, error) {
	res, err := s.repo.FindByID(ctx, resourceID)
	if err != nil {
		return ResourceItemResponse{}, mapRepositoryError(err)
	}
	if res.Type != TypePhysical {
		return ResourceItemResponse{}, resourceerrors.ErrItemsOnlyForPhysical
	}

	next, err := s.counters.GetNextValue(ctx, assetTagCounter)
	if err != nil {
		s.logger.Error("asset tag sequence failed", zap.Error(err))
		return ResourceItemResponse{}, err
	}

	item := &ResourceItem{
		ID:           uuid.New(),
		ResourceID:   res.ID,
		SerialNumber: req.SerialNumber,
		AssetTag:     fmt.Sprintf("AST-%06d", next),
		Status:       ItemAvailable,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		s.logger.Error("create resource item persist failed", zap.Error(err))
		return ResourceItemResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create resource item success",
		zap.String("resource_id", resourceID),
		zap.String("asset_tag", item.AssetTag),
	)
	return mapItemToResponse(*item), nil
}

func (s *service) GetItems(ctx context.Context, resourceID string) ([]ResourceItemResponse, error) {
	if _, err := s.repo.FindByID(ctx, resourceID); err != nil {
		return nil, mapRepositoryError(err)
	}

	items, err := s.repo.FindItemsByResource(ctx, resourceID)
	if err != nil {
		s.logger.Error("get resource items failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]ResourceItemResponse, len(items))
	for i, it := range items {
		resp[i] = mapItemToResponse(it)
	}
	return resp, nil
}

func mapResourceToResponse(res Resource) ResourceResponse {
	resp := ResourceResponse{
		ID:            res.ID.String(),
		Name:          res.Name,
		Type:          res.Type,
		Category:      res.Category,
		OwnerID:       res.OwnerID.String(),
		TotalQuantity: res.TotalQuantity,
		Status:        res.Status,
	}
	if res.CustodianID != nil {
		resp.CustodianID = res.CustodianID.String()
	}
	return resp
}

func mapItemToResponse(item ResourceItem) ResourceItemResponse {
	return ResourceItemResponse{
		ID:           item.ID.String(),
		ResourceID:   item.ResourceID.String(),
		SerialNumber: item.SerialNumber,
		AssetTag:     item.AssetTag,
		Status:       item.Status,
	}
}
