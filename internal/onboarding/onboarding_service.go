package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/niru8756/internal-portal-sub003/internal/assignment"
	"github.com/niru8756/internal-portal-sub003/internal/employee"
	employeeerrors "github.com/niru8756/internal-portal-sub003/internal/employee/errors"
	"github.com/niru8756/internal-portal-sub003/internal/resource"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Summary hasil bulk-assign starter kit. Error per resource dikumpulkan,
// tidak pernah menggagalkan keseluruhan proses.
type Summary struct {
	Assigned int      `json:"assigned"`
	Created  int      `json:"created"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

type Config struct {
	// StarterResources: nama resource yang harus dimiliki tiap karyawan baru.
	StarterResources []string
	// DefaultActorID: employee id yang tercatat sebagai pemberi assignment
	// ketika tidak ada actor eksplisit (mis. dari consumer Kafka).
	DefaultActorID string
}

//go:generate mockgen -source=onboarding_service.go -destination=mock/onboarding_service_mock.go -package=mock
type Service interface {
	EnsureResources(ctx context.Context, employeeID, actorID string) (Summary, error)
}

type service struct {
	assignments assignment.Service
	resources   resource.Repository
	employees   employee.Repository
	cfg         Config
	logger      *zap.Logger
}

func NewService(
	assignments assignment.Service,
	resources resource.Repository,
	employees employee.Repository,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("onboarding.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("onboarding.service")
	}
	return &service{
		assignments: assignments,
		resources:   resources,
		employees:   employees,
		cfg:         cfg,
		logger:      l,
	}
}

// EnsureResources memastikan karyawan memegang semua starter resource yang
// dikonfigurasi: resource yang belum ada di katalog dibuat dulu, yang sudah
// ter-assign di-skip, sisanya di-assign atas nama actor.
func (s *service) EnsureResources(ctx context.Context, employeeID, actorID string) (Summary, error) {
	summary := Summary{Errors: []string{}}

	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return summary, employeeerrors.ErrEmployeeNotFound
		}
		return summary, err
	}

	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return summary, err
	}

	for _, name := range s.cfg.StarterResources {
		res, err := s.resources.FindByName(ctx, name)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", name, err))
				continue
			}

			res = &resource.Resource{
				ID:            uuid.New(),
				Name:          name,
				Type:          resource.TypeSoftware,
				Category:      "ONBOARDING_STARTER",
				OwnerID:       actor,
				TotalQuantity: 1,
				Status:        resource.StatusActive,
			}
			if err := s.resources.Create(ctx, res); err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("%s: create resource: %v", name, err))
				continue
			}
			summary.Created++
			s.logger.Info("starter resource created",
				zap.String("resource", name),
				zap.String("resource_id", res.ID.String()),
			)
		}

		existing, _, err := s.assignments.GetAll(ctx, employeeID, res.ID.String(), assignment.StatusActive, 0, 1)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: lookup assignments: %v", name, err))
			continue
		}
		if len(existing) > 0 {
			summary.Skipped++
			continue
		}

		if _, err := s.assignments.Create(ctx, actor.String(), assignment.CreateAssignmentRequest{
			ResourceID: res.ID.String(),
			EmployeeID: employeeID,
			Quantity:   1,
			Notes:      "Onboarding starter kit",
		}); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: assign: %v", name, err))
			continue
		}
		summary.Assigned++
	}

	s.logger.Info("ensure onboarding resources done",
		zap.String("employee_id", employeeID),
		zap.Int("assigned", summary.Assigned),
		zap.Int("created", summary.Created),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", len(summary.Errors)),
	)
	return summary, nil
}

func (s *service) resolveActor(ctx context.Context, actorID string) (uuid.UUID, error) {
	if actorID == "" {
		actorID = s.cfg.DefaultActorID
	}
	if actorID != "" {
		if parsed, err := uuid.Parse(actorID); err == nil {
			return parsed, nil
		}
	}

	ceo, err := s.employees.FindFirstByRole(ctx, employee.RoleCEO)
	if err == nil {
		return ceo.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	appr, err := s.employees.FindFirstActiveByRoles(ctx, employee.PrivilegedRoles)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, employeeerrors.ErrEmployeeNotFound
		}
		return uuid.Nil, err
	}
	return appr.ID, nil
}
