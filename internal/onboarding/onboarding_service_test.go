package onboarding_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/niru8756/internal-portal-sub003/internal/assignment"
	"github.com/niru8756/internal-portal-sub003/internal/employee"
	employeeerrors "github.com/niru8756/internal-portal-sub003/internal/employee/errors"
	"github.com/niru8756/internal-portal-sub003/internal/onboarding"
	"github.com/niru8756/internal-portal-sub003/internal/resource"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAssignmentService struct {
	createFn func(ctx context.Context, actorID string, req assignment.CreateAssignmentRequest) (assignment.AssignmentResponse, error)
	getAllFn func(ctx context.Context, employeeID, resourceID, status string, offset, limit int) ([]assignment.AssignmentResponse, int64, error)
}

func (f *fakeAssignmentService) Create(ctx context.Context, actorID string, req assignment.CreateAssignmentRequest) (assignment.AssignmentResponse, error) {
	if f.createFn != nil {
		return f.createFn(ctx, actorID, req)
	}
	return assignment.AssignmentResponse{ID: uuid.NewString()}, nil
}

func (f *fakeAssignmentService) GetAll(ctx context.Context, employeeID, resourceID, status string, offset, limit int) ([]assignment.AssignmentResponse, int64, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx, employeeID, resourceID, status, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeAssignmentService) GetByID(ctx context.Context, id string) (assignment.AssignmentResponse, error) {
	return assignment.AssignmentResponse{}, nil
}

func (f *fakeAssignmentService) UpdateStatus(ctx context.Context, id, actorID, status, notes string) (assignment.AssignmentResponse, error) {
	return assignment.AssignmentResponse{}, nil
}

func (f *fakeAssignmentService) Revoke(ctx context.Context, id, actorID, reason string) (assignment.AssignmentResponse, error) {
	return assignment.AssignmentResponse{}, nil
}

func (f *fakeAssignmentService) Delete(ctx context.Context, id, actorID string) error { return nil }

type fakeResourceRepository struct {
	findByNameFn func(ctx context.Context, name string) (*resource.Resource, error)
	createFn     func(ctx context.Context, res *resource.Resource) error
}

func (f *fakeResourceRepository) WithTx(tx *sql.Tx) resource.Repository { return f }

func (f *fakeResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	if f.createFn != nil {
		return f.createFn(ctx, res)
	}
	return nil
}

func (f *fakeResourceRepository) FindAll(ctx context.Context, resourceType string, offset, limit int) ([]resource.Resource, int64, error) {
	return nil, 0, nil
}

func (f *fakeResourceRepository) FindByID(ctx context.Context, id string) (*resource.Resource, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResourceRepository) FindByName(ctx context.Context, name string) (*resource.Resource, error) {
	if f.findByNameFn != nil {
		return f.findByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResourceRepository) Update(ctx context.Context, res *resource.Resource) error { return nil }
func (f *fakeResourceRepository) Delete(ctx context.Context, id string) error              { return nil }

func (f *fakeResourceRepository) CreateItem(ctx context.Context, item *resource.ResourceItem) error {
	return nil
}

func (f *fakeResourceRepository) FindItemByID(ctx context.Context, id string) (*resource.ResourceItem, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResourceRepository) FindItemsByResource(ctx context.Context, resourceID string) ([]resource.ResourceItem, error) {
	return nil, nil
}

func (f *fakeResourceRepository) UpdateItemStatus(ctx context.Context, id, status string) error {
	return nil
}

type fakeEmployeeDirectory struct {
	findByIDFn               func(ctx context.Context, id string) (*employee.Employee, error)
	findFirstByRoleFn        func(ctx context.Context, role string) (*employee.Employee, error)
	findFirstActiveByRolesFn func(ctx context.Context, roles []string) (*employee.Employee, error)
}

func (f *fakeEmployeeDirectory) WithTx(tx *sql.Tx) employee.Repository                     { return f }
func (f *fakeEmployeeDirectory) Create(ctx context.Context, empl *employee.Employee) error { return nil }
func (f *fakeEmployeeDirectory) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeDirectory) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeDirectory) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeDirectory) FindFirstByRole(ctx context.Context, role string) (*employee.Employee, error) {
	if f.findFirstByRoleFn != nil {
		return f.findFirstByRoleFn(ctx, role)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeDirectory) FindFirstActiveByRoles(ctx context.Context, roles []string) (*employee.Employee, error) {
	if f.findFirstActiveByRolesFn != nil {
		return f.findFirstActiveByRolesFn(ctx, roles)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeDirectory) Update(ctx context.Context, empl *employee.Employee) error { return nil }
func (f *fakeEmployeeDirectory) Delete(ctx context.Context, id string) error               { return nil }

func (f *fakeEmployeeDirectory) ReassignPolicyOwnership(ctx context.Context, fromID, toID string) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeDirectory) ReassignDocumentOwnership(ctx context.Context, fromID, toID string) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeDirectory) ReassignResourceOwnership(ctx context.Context, fromID, toID string) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeDirectory) ReassignResourceCustody(ctx context.Context, fromID, toID string) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeDirectory) RepointManager(ctx context.Context, fromID, toID string) (int64, error) {
	return 0, nil
}

type onboardingDeps struct {
	service     onboarding.Service
	assignments *fakeAssignmentService
	resources   *fakeResourceRepository
	employees   *fakeEmployeeDirectory
}

func setupOnboardingTest(t *testing.T, cfg onboarding.Config) *onboardingDeps {
	t.Helper()

	deps := &onboardingDeps{
		assignments: &fakeAssignmentService{},
		resources:   &fakeResourceRepository{},
		employees:   &fakeEmployeeDirectory{},
	}
	deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return &employee.Employee{ID: uuid.MustParse(id), Status: "ACTIVE"}, nil
	}
	deps.service = onboarding.NewService(deps.assignments, deps.resources, deps.employees, cfg)
	return deps
}

func TestOnboardingService_EnsureResources(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("assigns existing starter resources", func(t *testing.T) {
		deps := setupOnboardingTest(t, onboarding.Config{
			StarterResources: []string{"Email Account", "Slack"},
		})

		resources := map[string]uuid.UUID{
			"Email Account": uuid.New(),
			"Slack":         uuid.New(),
		}
		deps.resources.findByNameFn = func(ctx context.Context, name string) (*resource.Resource, error) {
			return &resource.Resource{ID: resources[name], Name: name, Type: resource.TypeSoftware}, nil
		}

		var assigned []assignment.CreateAssignmentRequest
		deps.assignments.createFn = func(ctx context.Context, aid string, req assignment.CreateAssignmentRequest) (assignment.AssignmentResponse, error) {
			assert.Equal(t, actorID, aid)
			assert.Equal(t, "Onboarding starter kit", req.Notes)
			assigned = append(assigned, req)
			return assignment.AssignmentResponse{ID: uuid.NewString()}, nil
		}

		summary, err := deps.service.EnsureResources(ctx, employeeID, actorID)

		assert.NoError(t, err)
		assert.Equal(t, 2, summary.Assigned)
		assert.Equal(t, 0, summary.Created)
		assert.Equal(t, 0, summary.Skipped)
		assert.Empty(t, summary.Errors)
		assert.Len(t, assigned, 2)
	})

	t.Run("creates missing resource before assigning", func(t *testing.T) {
		deps := setupOnboardingTest(t, onboarding.Config{
			StarterResources: []string{"VPN"},
		})

		var created *resource.Resource
		deps.resources.createFn = func(ctx context.Context, res *resource.Resource) error {
			created = res
			return nil
		}

		summary, err := deps.service.EnsureResources(ctx, employeeID, actorID)

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Created)
		assert.Equal(t, 1, summary.Assigned)
		assert.NotNil(t, created)
		assert.Equal(t, "VPN", created.Name)
		assert.Equal(t, resource.TypeSoftware, created.Type)
		assert.Equal(t, "ONBOARDING_STARTER", created.Category)
		assert.Equal(t, actorID, created.OwnerID.String())
	})

	t.Run("skips resources already assigned", func(t *testing.T) {
		deps := setupOnboardingTest(t, onboarding.Config{
			StarterResources: []string{"Slack"},
		})

		resourceID := uuid.New()
		deps.resources.findByNameFn = func(ctx context.Context, name string) (*resource.Resource, error) {
			return &resource.Resource{ID: resourceID, Name: name}, nil
		}
		deps.assignments.getAllFn = func(ctx context.Context, eid, rid, status string, offset, limit int) ([]assignment.AssignmentResponse, int64, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, resourceID.String(), rid)
			assert.Equal(t, assignment.StatusActive, status)
			return []assignment.AssignmentResponse{{ID: uuid.NewString()}}, 1, nil
		}
		deps.assignments.createFn = func(ctx context.Context, aid string, req assignment.CreateAssignmentRequest) (assignment.AssignmentResponse, error) {
			t.Fatal("should not assign an already assigned resource")
			return assignment.AssignmentResponse{}, nil
		}

		summary, err := deps.service.EnsureResources(ctx, employeeID, actorID)

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Skipped)
		assert.Equal(t, 0, summary.Assigned)
	})

	t.Run("per resource errors never abort the run", func(t *testing.T) {
		deps := setupOnboardingTest(t, onboarding.Config{
			StarterResources: []string{"Broken", "Slack"},
		})

		deps.resources.findByNameFn = func(ctx context.Context, name string) (*resource.Resource, error) {
			if name == "Broken" {
				return nil, errors.New("db timeout")
			}
			return &resource.Resource{ID: uuid.New(), Name: name}, nil
		}

		summary, err := deps.service.EnsureResources(ctx, employeeID, actorID)

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Assigned)
		assert.Len(t, summary.Errors, 1)
		assert.Contains(t, summary.Errors[0], "Broken")
	})

	t.Run("falls back to CEO when no actor given", func(t *testing.T) {
		ceoID := uuid.New()
		deps := setupOnboardingTest(t, onboarding.Config{
			StarterResources: []string{"Slack"},
		})
		deps.employees.findFirstByRoleFn = func(ctx context.Context, role string) (*employee.Employee, error) {
			assert.Equal(t, employee.RoleCEO, role)
			return &employee.Employee{ID: ceoID, Role: employee.RoleCEO}, nil
		}
		deps.resources.findByNameFn = func(ctx context.Context, name string) (*resource.Resource, error) {
			return &resource.Resource{ID: uuid.New(), Name: name}, nil
		}

		var actor string
		deps.assignments.createFn = func(ctx context.Context, aid string, req assignment.CreateAssignmentRequest) (assignment.AssignmentResponse, error) {
			actor = aid
			return assignment.AssignmentResponse{ID: uuid.NewString()}, nil
		}

		summary, err := deps.service.EnsureResources(ctx, employeeID, "")

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Assigned)
		assert.Equal(t, ceoID.String(), actor)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupOnboardingTest(t, onboarding.Config{})
		deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.EnsureResources(ctx, uuid.New().String(), actorID)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
