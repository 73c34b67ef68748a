package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	assignmenterrors "github.com/niru8756/internal-portal-sub003/internal/assignment/errors"
	"github.com/niru8756/internal-portal-sub003/internal/audit"
	"github.com/niru8756/internal-portal-sub003/internal/resource"
	resourceerrors "github.com/niru8756/internal-portal-sub003/internal/resource/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateAssignmentRequest) (AssignmentResponse, error)
	GetAll(ctx context.Context, employeeID, resourceID, status string, offset, limit int) ([]AssignmentResponse, int64, error)
	GetByID(ctx context.Context, id string) (AssignmentResponse, error)
	UpdateStatus(ctx context.Context, id, actorID, status, notes string) (AssignmentResponse, error)
	Revoke(ctx context.Context, id, actorID, reason string) (AssignmentResponse, error)
	Delete(ctx context.Context, id, actorID string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	resources resource.Repository
	recorder  audit.Recorder
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	resources resource.Repository,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		resources: resources,
		recorder:  recorder,
		logger:    l,
	}
}

// terminalItemStatus memetakan status akhir assignment ke status item fisiknya.
func terminalItemStatus(assignmentStatus string) string {
	switch assignmentStatus {
	case StatusLost:
		return resource.ItemRetired
	case StatusDamaged:
		return resource.ItemMaintenance
	default:
		return resource.ItemAvailable
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateAssignmentRequest) (AssignmentResponse, error) {
	s.logger.Debug("create assignment requested",
		zap.String("resource_id", req.ResourceID),
		zap.String("employee_id", req.EmployeeID),
	)

	assignedBy, err := uuid.Parse(actorID)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrNotAllowed
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
	}

	res, err := s.resources.FindByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, resourceerrors.ErrResourceNotFound
		}
		return AssignmentResponse{}, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create assignment begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	resTx := s.resources.WithTx(tx)

	// Resource fisik hanya boleh punya satu assignment ACTIVE.
	if res.Type == resource.TypePhysical {
		active, err := qtx.CountActiveByResource(ctx, req.ResourceID)
		if err != nil {
			s.logger.Error("count active assignments failed", zap.Error(err))
			return AssignmentResponse{}, err
		}
		if active > 0 {
			return AssignmentResponse{}, assignmenterrors.ErrPhysicalAlreadyAssigned
		}
	}

	var itemID *uuid.UUID
	if req.ItemID != "" {
		item, err := s.resources.FindItemByID(ctx, req.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return AssignmentResponse{}, resourceerrors.ErrResourceItemNotFound
			}
			return AssignmentResponse{}, err
		}
		if item.ResourceID != res.ID {
			return AssignmentResponse{}, assignmenterrors.ErrItemWrongResource
		}
		if item.Status != resource.ItemAvailable {
			return AssignmentResponse{}, assignmenterrors.ErrItemNotAvailable
		}
		if err := resTx.UpdateItemStatus(ctx, req.ItemID, resource.ItemAssigned); err != nil {
			s.logger.Error("mark item assigned failed", zap.Error(err))
			return AssignmentResponse{}, err
		}
		itemID = &item.ID
	}

	asg := &ResourceAssignment{
		ID:               uuid.New(),
		ResourceID:       res.ID,
		EmployeeID:       employeeID,
		ItemID:           itemID,
		QuantityAssigned: quantity,
		AssignedBy:       assignedBy,
		Status:           StatusActive,
		Notes:            req.Notes,
		AssignedAt:       time.Now().UTC(),
	}

	if err := qtx.Create(ctx, asg); err != nil {
		s.logger.Error("create assignment persist failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create assignment commit failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityResource,
		EntityID:     res.ID.String(),
		ActivityType: "RESOURCE_ASSIGNED",
		Title:        "Resource assigned",
		Description:  fmt.Sprintf("Assigned to employee %s", req.EmployeeID),
		Metadata:     map[string]any{"assignment_id": asg.ID.String(), "quantity": quantity},
		PerformedBy:  actorID,
	})
	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityEmployee,
		EntityID:     req.EmployeeID,
		ActivityType: "ASSIGNMENT_RECEIVED",
		Title:        "Resource received",
		Description:  fmt.Sprintf("Received %s", res.Name),
		Metadata:     map[string]any{"assignment_id": asg.ID.String(), "resource_id": res.ID.String()},
		PerformedBy:  actorID,
	})

	s.logger.Info("create assignment success",
		zap.String("assignment_id", asg.ID.String()),
		zap.String("resource_id", res.ID.String()),
	)
	return mapAssignmentToResponse(*asg), nil
}

func (s *service) GetAll(ctx context.Context, employeeID, resourceID, status string, offset, limit int) ([]AssignmentResponse, int64, error) {
	asgs, total, err := s.repo.FindAll(ctx, employeeID, resourceID, status, offset, limit)
	if err != nil {
		s.logger.Error("get all assignments failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	resp := make([]AssignmentResponse, len(asgs))
	for i, a := range asgs {
		resp[i] = mapAssignmentToResponse(a)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AssignmentResponse, error) {
	asg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}
	return mapAssignmentToResponse(*asg), nil
}

// UpdateStatus menjalankan state machine: hanya ACTIVE yang boleh pindah, dan
// hanya ke status terminal.
func (s *service) UpdateStatus(ctx context.Context, id, actorID, status, notes string) (AssignmentResponse, error) {
	s.logger.Debug("update assignment status requested",
		zap.String("assignment_id", id),
		zap.String("status", status),
	)

	if !IsTerminalStatus(status) {
		return AssignmentResponse{}, assignmenterrors.ErrInvalidTransition
	}

	asg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}
	if asg.Status != StatusActive {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotActive
	}

	if notes == "" {
		notes = asg.Notes
	}
	returnedAt := time.Now().UTC()

	updated, err := s.transitionToTerminal(ctx, asg, status, notes, returnedAt)
	if err != nil {
		return AssignmentResponse{}, err
	}

	s.recorder.Audit(ctx, audit.AuditEntry{
		EntityType:   audit.EntityAssignment,
		EntityID:     id,
		ChangedBy:    actorID,
		FieldChanged: "status",
		OldValue:     StatusActive,
		NewValue:     status,
	})
	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityAssignment,
		EntityID:     id,
		ActivityType: "ASSIGNMENT_" + status,
		Title:        "Assignment closed",
		Description:  "Status changed to " + status,
		PerformedBy:  actorID,
	})

	s.logger.Info("update assignment status success",
		zap.String("assignment_id", id),
		zap.String("status", status),
	)
	return mapAssignmentToResponse(*updated), nil
}

// Revoke menarik paksa assignment yang masih ACTIVE.
func (s *service) Revoke(ctx context.Context, id, actorID, reason string) (AssignmentResponse, error) {
	s.logger.Debug("revoke assignment requested", zap.String("assignment_id", id))

	asg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AssignmentResponse{}, mapRepositoryError(err)
	}
	if asg.Status != StatusActive {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotActive
	}

	notes := asg.Notes
	if reason != "" {
		if notes != "" {
			notes += "; "
		}
		notes += "revoked: " + reason
	}
	returnedAt := time.Now().UTC()

	updated, err := s.transitionToTerminal(ctx, asg, StatusRevoked, notes, returnedAt)
	if err != nil {
		return AssignmentResponse{}, err
	}

	s.recorder.Audit(ctx, audit.AuditEntry{
		EntityType:   audit.EntityAssignment,
		EntityID:     id,
		ChangedBy:    actorID,
		FieldChanged: "status",
		OldValue:     StatusActive,
		NewValue:     StatusRevoked,
	})
	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityAssignment,
		EntityID:     id,
		ActivityType: "ASSIGNMENT_REVOKED",
		Title:        "Assignment revoked",
		Description:  reason,
		PerformedBy:  actorID,
	})

	s.logger.Info("revoke assignment success", zap.String("assignment_id", id))
	return mapAssignmentToResponse(*updated), nil
}

// Delete hard delete administratif; item dikembalikan jadi AVAILABLE.
// Audit log sengaja tidak ditulis, jejaknya cukup lewat timeline.
func (s *service) Delete(ctx context.Context, id, actorID string) error {
	s.logger.Debug("delete assignment requested", zap.String("assignment_id", id))

	asg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete assignment begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if asg.ItemID != nil {
		resTx := s.resources.WithTx(tx)
		if err := resTx.UpdateItemStatus(ctx, asg.ItemID.String(), resource.ItemAvailable); err != nil {
			s.logger.Error("free item on delete failed", zap.Error(err))
			return err
		}
	}

	affected, err := qtx.HardDelete(ctx, id)
	if err != nil {
		s.logger.Error("delete assignment failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		return assignmenterrors.ErrAssignmentNotFound
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete assignment commit failed", zap.Error(err))
		return err
	}

	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityResource,
		EntityID:     asg.ResourceID.String(),
		ActivityType: "ASSIGNMENT_DELETED",
		Title:        "Assignment removed",
		Metadata:     map[string]any{"assignment_id": id},
		PerformedBy:  actorID,
	})
	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityEmployee,
		EntityID:     asg.EmployeeID.String(),
		ActivityType: "ASSIGNMENT_DELETED",
		Title:        "Assignment removed",
		Metadata:     map[string]any{"assignment_id": id, "resource_id": asg.ResourceID.String()},
		PerformedBy:  actorID,
	})

	s.logger.Info("delete assignment success", zap.String("assignment_id", id))
	return nil
}

// transitionToTerminal melakukan guarded flip + sinkronisasi status item dalam
// satu transaksi.
func (s *service) transitionToTerminal(
	ctx context.Context,
	asg *ResourceAssignment,
	status, notes string,
	returnedAt time.Time,
) (*ResourceAssignment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assignment transition begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.UpdateStatusIfActive(ctx, asg.ID.String(), status, notes, returnedAt)
	if err != nil {
		s.logger.Error("assignment status flip failed", zap.Error(err))
		return nil, err
	}
	if affected == 0 {
		// Kalah balapan dengan transisi lain.
		return nil, assignmenterrors.ErrAssignmentNotActive
	}

	if asg.ItemID != nil {
		resTx := s.resources.WithTx(tx)
		if err := resTx.UpdateItemStatus(ctx, asg.ItemID.String(), terminalItemStatus(status)); err != nil {
			s.logger.Error("item status sync failed", zap.Error(err))
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assignment transition commit failed", zap.Error(err))
		return nil, err
	}

	updated := *asg
	updated.Status = status
	updated.Notes = notes
	updated.ReturnedAt = &returnedAt
	return &updated, nil
}

func mapAssignmentToResponse(asg ResourceAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:               asg.ID.String(),
		ResourceID:       asg.ResourceID.String(),
		EmployeeID:       asg.EmployeeID.String(),
		QuantityAssigned: asg.QuantityAssigned,
		AssignedBy:       asg.AssignedBy.String(),
		Status:           asg.Status,
		Notes:            asg.Notes,
		AssignedAt:       asg.AssignedAt.Format(time.RFC3339),
	}
	if asg.ItemID != nil {
		resp.ItemID = asg.ItemID.String()
	}
	if asg.ReturnedAt != nil {
		resp.ReturnedAt = asg.ReturnedAt.Format(time.RFC3339)
	}
	return resp
}
