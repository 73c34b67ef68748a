package policy

import (
	"context"
	"time"

	"github.com/niru8756/internal-portal-sub003/internal/audit"
	policyerrors "github.com/niru8756/internal-portal-sub003/internal/policy/errors"
	"github.com/niru8756/internal-portal-sub003/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=policy_service.go -destination=mock/policy_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error)
	GetAll(ctx context.Context, status string, offset, limit int) ([]PolicyResponse, int64, error)
	GetByID(ctx context.Context, id string) (PolicyResponse, error)
	Update(ctx context.Context, id string, req UpdatePolicyRequest) (PolicyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error) {
	s.logger.Debug("create policy requested", zap.String("title", req.Title))

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return PolicyResponse{}, policyerrors.ErrPolicyNotFound
	}

	pol := &Policy{
		ID:      uuid.New(),
		Title:   req.Title,
		OwnerID: ownerID,
		Status:  StatusDraft,
		Content: req.Content,
	}

	if err := s.repo.Create(ctx, pol); err != nil {
		s.logger.Error("create policy persist failed", zap.Error(err))
		return PolicyResponse{}, mapRepositoryError(err)
	}

	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityPolicy,
		EntityID:     pol.ID.String(),
		ActivityType: "POLICY_CREATED",
		Title:        "Policy drafted",
		Description:  pol.Title,
		PerformedBy:  contextutil.GetActorID(ctx),
	})

	s.logger.Info("create policy success", zap.String("policy_id", pol.ID.String()))
	return mapPolicyToResponse(*pol), nil
}

func (s *service) GetAll(ctx context.Context, status string, offset, limit int) ([]PolicyResponse, int64, error) {
	pols, total, err := s.repo.FindAll(ctx, status, offset, limit)
	if err != nil {
		s.logger.Error("get all policies failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	resp := make([]PolicyResponse, len(pols))
	for i, p := range pols {
		resp[i] = mapPolicyToResponse(p)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PolicyResponse, error) {
	pol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get policy by id failed", zap.String("policy_id", id), zap.Error(err))
		return PolicyResponse{}, mapRepositoryError(err)
	}
	return mapPolicyToResponse(*pol), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePolicyRequest) (PolicyResponse, error) {
	s.logger.Debug("update policy requested", zap.String("policy_id", id))

	pol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PolicyResponse{}, mapRepositoryError(err)
	}
	if pol.Status == StatusArchived && req.Status != StatusArchived {
		return PolicyResponse{}, policyerrors.ErrPolicyArchived
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return PolicyResponse{}, policyerrors.ErrPolicyNotFound
	}

	oldStatus := pol.Status

	pol.Title = req.Title
	pol.OwnerID = ownerID
	pol.Content = req.Content
	pol.Status = req.Status
	if oldStatus != req.Status && (req.Status == StatusReview || req.Status == StatusApproved || req.Status == StatusRejected) {
		now := time.Now().UTC()
		pol.LastReviewDate = &now
	}

	if err := s.repo.Update(ctx, pol); err != nil {
		s.logger.Error("update policy persist failed", zap.Error(err))
		return PolicyResponse{}, mapRepositoryError(err)
	}

	if oldStatus != pol.Status {
		actorID := contextutil.GetActorID(ctx)
		s.recorder.Audit(ctx, audit.AuditEntry{
			EntityType:   audit.EntityPolicy,
			EntityID:     pol.ID.String(),
			ChangedBy:    actorID,
			FieldChanged: "status",
			OldValue:     oldStatus,
			NewValue:     pol.Status,
		})
		s.recorder.Timeline(ctx, audit.TimelineEntry{
			EntityType:   audit.EntityPolicy,
			EntityID:     pol.ID.String(),
			ActivityType: "POLICY_STATUS_CHANGED",
			Title:        "Policy status changed",
			Description:  oldStatus + " -> " + pol.Status,
			PerformedBy:  actorID,
		})
	}

	s.logger.Info("update policy success", zap.String("policy_id", id))
	return mapPolicyToResponse(*pol), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete policy requested", zap.String("policy_id", id))

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete policy failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete policy success", zap.String("policy_id", id))
	return nil
}

func mapPolicyToResponse(pol Policy) PolicyResponse {
	resp := PolicyResponse{
		ID:      pol.ID.String(),
		Title:   pol.Title,
		OwnerID: pol.OwnerID.String(),
		Status:  pol.Status,
		Content: pol.Content,
	}
	if pol.LastReviewDate != nil {
		resp.LastReviewDate = pol.LastReviewDate.Format(time.RFC3339)
	}
	return resp
}
