package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	employeeerrors "github.com/niru8756/internal-portal-sub003/internal/employee/errors"
	"github.com/niru8756/internal-portal-sub003/internal/events"
	"github.com/niru8756/internal-portal-sub003/internal/messaging/kafka"
	"github.com/niru8756/internal-portal-sub003/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKey = "employees:options"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	Reassign(ctx context.Context, actorID string, req ReassignOwnershipRequest) (ReassignOwnershipResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	if !IsValidRole(req.Role) {
		s.logger.Warn("create employee unknown role", zap.String("role", req.Role))
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var managerID *uuid.UUID
	if req.ManagerID != "" {
		parsed, err := uuid.Parse(req.ManagerID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidManagerID
		}
		if _, err := qtx.FindByID(ctx, req.ManagerID); err != nil {
			s.logger.Warn("create employee manager not found", zap.String("manager_id", req.ManagerID))
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		managerID = &parsed
	}

	empl := &Employee{
		ID:         uuid.New(),
		FullName:   req.FullName,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		Status:     StatusOnboarding,
		ManagerID:  managerID,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			Role:       empl.Role,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeResponse, error) {
	cacheKey := EmployeeOptionsKey

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight untuk handle traffic tinggi saat form dibuka bersamaan
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		// 3. Simpan ke Redis (TTL 1 jam cukup karena data master)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.String("employee_id", id))
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("employee_id", id),
		zap.String("role", req.Role),
	)

	if !IsValidRole(req.Role) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	var managerID *uuid.UUID
	if req.ManagerID != "" {
		parsed, err := uuid.Parse(req.ManagerID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidManagerID
		}
		managerID = &parsed
	}

	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Role = req.Role
	empl.Department = req.Department
	empl.Status = req.Status
	empl.ManagerID = managerID
	empl.Manager = nil

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// Reassign memindahkan seluruh kepemilikan (policy, dokumen, resource owner +
// custodian) dan anak buah dari satu karyawan ke karyawan lain dalam satu
// transaksi. Dipakai saat offboarding.
func (s *service) Reassign(ctx context.Context, actorID string, req ReassignOwnershipRequest) (ReassignOwnershipResponse, error) {
	s.logger.Debug("reassign ownership requested",
		zap.String("actor_id", actorID),
		zap.String("from_employee_id", req.FromEmployeeID),
		zap.String("to_employee_id", req.ToEmployeeID),
	)

	if req.FromEmployeeID == req.ToEmployeeID {
		return ReassignOwnershipResponse{}, employeeerrors.ErrReassignSameEmployee
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reassign ownership begin tx failed", zap.Error(err))
		return ReassignOwnershipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, req.FromEmployeeID); err != nil {
		return ReassignOwnershipResponse{}, mapRepositoryError(err)
	}
	if _, err := qtx.FindByID(ctx, req.ToEmployeeID); err != nil {
		return ReassignOwnershipResponse{}, mapRepositoryError(err)
	}

	policies, err := qtx.ReassignPolicyOwnership(ctx, req.FromEmployeeID, req.ToEmployeeID)
	if err != nil {
		s.logger.Error("reassign policy ownership failed", zap.Error(err))
		return ReassignOwnershipResponse{}, err
	}
	documents, err := qtx.ReassignDocumentOwnership(ctx, req.FromEmployeeID, req.ToEmployeeID)
	if err != nil {
		s.logger.Error("reassign document ownership failed", zap.Error(err))
		return ReassignOwnershipResponse{}, err
	}
	resources, err := qtx.ReassignResourceOwnership(ctx, req.FromEmployeeID, req.ToEmployeeID)
	if err != nil {
		s.logger.Error("reassign resource ownership failed", zap.Error(err))
		return ReassignOwnershipResponse{}, err
	}
	custodies, err := qtx.ReassignResourceCustody(ctx, req.FromEmployeeID, req.ToEmployeeID)
	if err != nil {
		s.logger.Error("reassign resource custody failed", zap.Error(err))
		return ReassignOwnershipResponse{}, err
	}
	reports, err := qtx.RepointManager(ctx, req.FromEmployeeID, req.ToEmployeeID)
	if err != nil {
		s.logger.Error("repoint manager links failed", zap.Error(err))
		return ReassignOwnershipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reassign ownership commit failed", zap.Error(err))
		return ReassignOwnershipResponse{}, err
	}

	s.logger.Info("reassign ownership success",
		zap.String("from_employee_id", req.FromEmployeeID),
		zap.String("to_employee_id", req.ToEmployeeID),
		zap.Int64("policies", policies),
		zap.Int64("documents", documents),
		zap.Int64("resources", resources),
		zap.Int64("custodies", custodies),
		zap.Int64("reports", reports),
	)

	return ReassignOwnershipResponse{
		FromEmployeeID:      req.FromEmployeeID,
		ToEmployeeID:        req.ToEmployeeID,
		PoliciesReassigned:  policies,
		DocumentsReassigned: documents,
		ResourcesReassigned: resources,
		CustodiesReassigned: custodies,
		ReportsRepointed:    reports,
	}, nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         empl.ID.String(),
		FullName:   empl.FullName,
		Email:      empl.Email,
		Role:       empl.Role,
		Department: empl.Department,
		Status:     empl.Status,
		ManagerID:  uuidToString(empl.ManagerID),
	}
	if empl.Manager != nil {
		resp.Manager = &EmployeeManagerResponse{
			ID:       empl.Manager.ID.String(),
			FullName: empl.Manager.FullName,
		}
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
