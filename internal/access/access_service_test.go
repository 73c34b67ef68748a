package access_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/niru8756/internal-portal-sub003/internal/access"
	accesserrors "github.com/niru8756/internal-portal-sub003/internal/access/errors"
	"github.com/niru8756/internal-portal-sub003/internal/audit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAccessRepository struct {
	createFn   func(ctx context.Context, rec *access.Access) error
	findAllFn  func(ctx context.Context, employeeID, status string, offset, limit int) ([]access.Access, int64, error)
	findByIDFn func(ctx context.Context, id string) (*access.Access, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeAccessRepository) WithTx(tx *sql.Tx) access.Repository { return f }

func (f *fakeAccessRepository) Create(ctx context.Context, rec *access.Access) error {
	if f.createFn != nil {
		return f.createFn(ctx, rec)
	}
	return nil
}

func (f *fakeAccessRepository) FindAll(ctx context.Context, employeeID, status string, offset, limit int) ([]access.Access, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, employeeID, status, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeAccessRepository) FindByID(ctx context.Context, id string) (*access.Access, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccessRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeAccessRepository) MarkApproved(ctx context.Context, id, approverID string) (int64, error) {
	return 1, nil
}

func (f *fakeAccessRepository) MarkRevoked(ctx context.Context, id, approverID string) (int64, error) {
	return 1, nil
}

func (f *fakeAccessRepository) SetResourceID(ctx context.Context, id, resourceID string) (int64, error) {
	return 1, nil
}

type fakeWorkflowOpener struct {
	openFn func(ctx context.Context, requesterID, accessRequestID string, resourceID *string) (string, error)
}

func (f *fakeWorkflowOpener) OpenAccessRequest(ctx context.Context, requesterID, accessRequestID string, resourceID *string) (string, error) {
	if f.openFn != nil {
		return f.openFn(ctx, requesterID, accessRequestID, resourceID)
	}
	return uuid.NewString(), nil
}

type fakeRecorder struct {
	timelines []audit.TimelineEntry
}

func (f *fakeRecorder) Audit(ctx context.Context, entry audit.AuditEntry) {}

func (f *fakeRecorder) Timeline(ctx context.Context, entry audit.TimelineEntry) {
	f.timelines = append(f.timelines, entry)
}

type accessServiceDeps struct {
	service   access.Service
	repo      *fakeAccessRepository
	workflows *fakeWorkflowOpener
	recorder  *fakeRecorder
}

func setupAccessServiceTest(t *testing.T) *accessServiceDeps {
	t.Helper()

	deps := &accessServiceDeps{
		repo:      &fakeAccessRepository{},
		workflows: &fakeWorkflowOpener{},
		recorder:  &fakeRecorder{},
	}
	deps.service = access.NewService(deps.repo, deps.workflows, deps.recorder)
	return deps
}

func TestAccessService_Create(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success with resource target opens workflow", func(t *testing.T) {
		deps := setupAccessServiceTest(t)

		resourceID := uuid.New().String()
		workflowID := uuid.New().String()

		var created *access.Access
		deps.repo.createFn = func(ctx context.Context, rec *access.Access) error {
			created = rec
			return nil
		}
		deps.workflows.openFn = func(ctx context.Context, rid, accessID string, resID *string) (string, error) {
			assert.Equal(t, requesterID, rid)
			assert.Equal(t, created.ID.String(), accessID)
			assert.NotNil(t, resID)
			assert.Equal(t, resourceID, *resID)
			return workflowID, nil
		}

		resp, err := deps.service.Create(ctx, requesterID, access.CreateAccessRequest{
			EmployeeID: employeeID,
			ResourceID: resourceID,
		})

		assert.NoError(t, err)
		assert.Equal(t, access.StatusRequested, resp.Status)
		assert.Equal(t, access.PermissionRead, resp.PermissionLevel)
		assert.Equal(t, workflowID, resp.WorkflowID)
		assert.Len(t, deps.recorder.timelines, 1)
		assert.Equal(t, "ACCESS_REQUESTED", deps.recorder.timelines[0].ActivityType)
	})

	t.Run("success hardware request without resource", func(t *testing.T) {
		deps := setupAccessServiceTest(t)

		deps.workflows.openFn = func(ctx context.Context, rid, accessID string, resID *string) (string, error) {
			assert.Nil(t, resID)
			return uuid.NewString(), nil
		}

		resp, err := deps.service.Create(ctx, requesterID, access.CreateAccessRequest{
			EmployeeID:      employeeID,
			HardwareRequest: "MacBook Pro 14",
			PermissionLevel: access.PermissionAdmin,
		})

		assert.NoError(t, err)
		assert.Equal(t, "MacBook Pro 14", resp.HardwareRequest)
		assert.Equal(t, access.PermissionAdmin, resp.PermissionLevel)
	})

	t.Run("negative missing both targets", func(t *testing.T) {
		deps := setupAccessServiceTest(t)

		_, err := deps.service.Create(ctx, requesterID, access.CreateAccessRequest{
			EmployeeID: employeeID,
		})

		assert.ErrorIs(t, err, accesserrors.ErrAccessTargetRequired)
	})

	t.Run("negative workflow open failure removes orphan record", func(t *testing.T) {
		deps := setupAccessServiceTest(t)

		deps.workflows.openFn = func(ctx context.Context, rid, accessID string, resID *string) (string, error) {
			return "", errors.New("workflow persist failed")
		}

		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = true
			return nil
		}

		_, err := deps.service.Create(ctx, requesterID, access.CreateAccessRequest{
			EmployeeID: employeeID,
			ResourceID: uuid.New().String(),
		})

		assert.Error(t, err)
		assert.True(t, deleted)
		assert.Empty(t, deps.recorder.timelines)
	})
}

func TestAccessService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success while still requested", func(t *testing.T) {
		deps := setupAccessServiceTest(t)

		rec := &access.Access{ID: uuid.New(), EmployeeID: uuid.New(), Status: access.StatusRequested}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*access.Access, error) {
			return rec, nil
		}

		err := deps.service.Delete(ctx, rec.ID.String())

		assert.NoError(t, err)
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupAccessServiceTest(t)

		rec := &access.Access{ID: uuid.New(), EmployeeID: uuid.New(), Status: access.StatusApproved}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*access.Access, error) {
			return rec, nil
		}

		err := deps.service.Delete(ctx, rec.ID.String())

		assert.ErrorIs(t, err, accesserrors.ErrAccessAlreadyDecided)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupAccessServiceTest(t)

		err := deps.service.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, accesserrors.ErrAccessNotFound)
	})
}
