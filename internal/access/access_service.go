package access

import (
	"context"
	"time"

	accesserrors "github.com/niru8756/internal-portal-sub003/internal/access/errors"
	"github.com/niru8756/internal-portal-sub003/internal/audit"
	"github.com/niru8756/internal-portal-sub003/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WorkflowOpener membuka approval workflow untuk access request yang baru
// dibuat. Diimplementasikan oleh approval service lewat adapter di wiring
// supaya paket ini tidak perlu mengimpor approval.
type WorkflowOpener interface {
	OpenAccessRequest(ctx context.Context, requesterID, accessRequestID string, resourceID *string) (string, error)
}

//go:generate mockgen -source=access_service.go -destination=mock/access_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, requesterID string, req CreateAccessRequest) (AccessResponse, error)
	GetAll(ctx context.Context, employeeID, status string, offset, limit int) ([]AccessResponse, int64, error)
	GetByID(ctx context.Context, id string) (AccessResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	workflows WorkflowOpener
	recorder  audit.Recorder
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	workflows WorkflowOpener,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("access.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("access.service")
	}
	return &service{
		repo:      repo,
		workflows: workflows,
		recorder:  recorder,
		logger:    l,
	}
}

// Create menyimpan access request berstatus REQUESTED lalu membuka satu
// ACCESS_REQUEST workflow yang membawa id record ini di payload-nya.
func (s *service) Create(ctx context.Context, requesterID string, req CreateAccessRequest) (AccessResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create access request",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
	)

	if req.ResourceID == "" && req.HardwareRequest == "" {
		return AccessResponse{}, accesserrors.ErrAccessTargetRequired
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AccessResponse{}, accesserrors.ErrAccessNotFound
	}

	var resourceID *uuid.UUID
	if req.ResourceID != "" {
		parsed, err := uuid.Parse(req.ResourceID)
		if err != nil {
			return AccessResponse{}, accesserrors.ErrAccessTargetRequired
		}
		resourceID = &parsed
	}

	permission := req.PermissionLevel
	if permission == "" {
		permission = PermissionRead
	}

	rec := &Access{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		ResourceID:      resourceID,
		HardwareRequest: req.HardwareRequest,
		PermissionLevel: permission,
		Status:          StatusRequested,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("create access request persist failed", zap.Error(err))
		return AccessResponse{}, mapRepositoryError(err)
	}

	var resourceIDStr *string
	if resourceID != nil {
		v := resourceID.String()
		resourceIDStr = &v
	}

	workflowID, err := s.workflows.OpenAccessRequest(ctx, requesterID, rec.ID.String(), resourceIDStr)
	if err != nil {
		// Record access tetap ada tapi tanpa workflow tidak bisa diputuskan;
		// hapus lagi supaya requester bisa mengulang.
		s.logger.Error("open access workflow failed, rolling back access record",
			zap.String("access_id", rec.ID.String()),
			zap.Error(err),
		)
		if delErr := s.repo.Delete(ctx, rec.ID.String()); delErr != nil {
			s.logger.Error("cleanup orphan access record failed", zap.Error(delErr))
		}
		return AccessResponse{}, err
	}

	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityAccess,
		EntityID:     rec.ID.String(),
		ActivityType: "ACCESS_REQUESTED",
		Title:        "Access requested",
		Description:  "Access request submitted for approval",
		Metadata: map[string]any{
			"workflow_id":      workflowID,
			"permission_level": rec.PermissionLevel,
		},
		PerformedBy: requesterID,
	})

	s.logger.Info("create access request success",
		zap.String("access_id", rec.ID.String()),
		zap.String("workflow_id", workflowID),
	)

	resp := mapAccessToResponse(*rec)
	resp.WorkflowID = workflowID
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, employeeID, status string, offset, limit int) ([]AccessResponse, int64, error) {
	recs, total, err := s.repo.FindAll(ctx, employeeID, status, offset, limit)
	if err != nil {
		s.logger.Error("get all access requests failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	resp := make([]AccessResponse, len(recs))
	for i, rec := range recs {
		resp[i] = mapAccessToResponse(rec)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AccessResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get access request failed", zap.String("access_id", id), zap.Error(err))
		return AccessResponse{}, mapRepositoryError(err)
	}
	return mapAccessToResponse(*rec), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if rec.Status != StatusRequested {
		return accesserrors.ErrAccessAlreadyDecided
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete access request failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete access request success", zap.String("access_id", id))
	return nil
}

func mapAccessToResponse(rec Access) AccessResponse {
	resp := AccessResponse{
		ID:              rec.ID.String(),
		EmployeeID:      rec.EmployeeID.String(),
		HardwareRequest: rec.HardwareRequest,
		PermissionLevel: rec.PermissionLevel,
		Status:          rec.Status,
	}
	if rec.ResourceID != nil {
		resp.ResourceID = rec.ResourceID.String()
	}
	if rec.ApproverID != nil {
		resp.ApproverID = rec.ApproverID.String()
	}
	if rec.ApprovedAt != nil {
		resp.ApprovedAt = rec.ApprovedAt.Format(time.RFC3339)
	}
	if rec.RevokedAt != nil {
		resp.RevokedAt = rec.RevokedAt.Format(time.RFC3339)
	}
	return resp
}
