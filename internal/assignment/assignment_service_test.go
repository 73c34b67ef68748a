package assignment_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/niru8756/internal-portal-sub003/internal/assignment"
	assignmenterrors "github.com/niru8756/internal-portal-sub003/internal/assignment/errors"
	"github.com/niru8756/internal-portal-sub003/internal/audit"
	"github.com/niru8756/internal-portal-sub003/internal/resource"
	resourceerrors "github.com/niru8756/internal-portal-sub003/internal/resource/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAssignmentRepository struct {
	createFn                func(ctx context.Context, asg *assignment.ResourceAssignment) error
	findAllFn               func(ctx context.Context, employeeID, resourceID, status string, offset, limit int) ([]assignment.ResourceAssignment, int64, error)
	findByIDFn              func(ctx context.Context, id string) (*assignment.ResourceAssignment, error)
	countActiveByResourceFn func(ctx context.Context, resourceID string) (int64, error)
	updateStatusIfActiveFn  func(ctx context.Context, id, status, notes string, returnedAt time.Time) (int64, error)
	hardDeleteFn            func(ctx context.Context, id string) (int64, error)
}

func (f *fakeAssignmentRepository) WithTx(tx *sql.Tx) assignment.Repository { return f }

func (f *fakeAssignmentRepository) Create(ctx context.Context, asg *assignment.ResourceAssignment) error {
	if f.createFn != nil {
		return f.createFn(ctx, asg)
	}
	return nil
}

func (f *fakeAssignmentRepository) FindAll(ctx context.Context, employeeID, resourceID, status string, offset, limit int) ([]assignment.ResourceAssignment, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, employeeID, resourceID, status, offset, limit)
	}
	return nil, 0, nil
}

func (f *fakeAssignmentRepository) FindByID(ctx context.Context, id string) (*assignment.ResourceAssignment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAssignmentRepository) CountActiveByResource(ctx context.Context, resourceID string) (int64, error) {
	if f.countActiveByResourceFn != nil {
		return f.countActiveByResourceFn(ctx, resourceID)
	}
	return 0, nil
}

func (f *fakeAssignmentRepository) UpdateStatusIfActive(ctx context.Context, id, status, notes string, returnedAt time.Time) (int64, error) {
	if f.updateStatusIfActiveFn != nil {
		return f.updateStatusIfActiveFn(ctx, id, status, notes, returnedAt)
	}
	return 1, nil
}

func (f *fakeAssignmentRepository) HardDelete(ctx context.Context, id string) (int64, error) {
	if f.hardDeleteFn != nil {
		return f.hardDeleteFn(ctx, id)
	}
	return 1, nil
}

type fakeResourceRepository struct {
	findByIDFn         func(ctx context.Context, id string) (*resource.Resource, error)
	findItemByIDFn     func(ctx context.Context, id string) (*resource.ResourceItem, error)
	updateItemStatusFn func(ctx context.Context, id, status string) error
}

func (f *fakeResourceRepository) WithTx(tx *sql.Tx) resource.Repository              { return f }
func (f *fakeResourceRepository) Create(ctx context.Context, res *resource.Resource) error { return nil }

func (f *fakeResourceRepository) FindAll(ctx context.Context, resourceType string, offset, limit int) ([]resource.Resource, int64, error) {
	return nil, 0, nil
}

func (f *fakeResourceRepository) FindByID(ctx context.Context, id string) (*resource.Resource, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResourceRepository) FindByName(ctx context.Context, name string) (*resource.Resource, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResourceRepository) Update(ctx context.Context, res *resource.Resource) error { return nil }
func (f *fakeResourceRepository) Delete(ctx context.Context, id string) error              { return nil }

func (f *fakeResourceRepository) CreateItem(ctx context.Context, item *resource.ResourceItem) error {
	return nil
}

func (f *fakeResourceRepository) FindItemByID(ctx context.Context, id string) (*resource.ResourceItem, error) {
	if f.findItemByIDFn != nil {
		return f.findItemByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResourceRepository) FindItemsByResource(ctx context.Context, resourceID string) ([]resource.ResourceItem, error) {
	return nil, nil
}

func (f *fakeResourceRepository) UpdateItemStatus(ctx context.Context, id, status string) error {
	if f.updateItemStatusFn != nil {
		return f.updateItemStatusFn(ctx, id, status)
	}
	return nil
}

type fakeRecorder struct {
	audits    []audit.AuditEntry
	timelines []audit.TimelineEntry
}

func (f *fakeRecorder) Audit(ctx context.Context, entry audit.AuditEntry) {
	f.audits = append(f.audits, entry)
}

func (f *fakeRecorder) Timeline(ctx context.Context, entry audit.TimelineEntry) {
	f.timelines = append(f.timelines, entry)
}

type assignmentServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   assignment.Service
	repo      *fakeAssignmentRepository
	resources *fakeResourceRepository
	recorder  *fakeRecorder
}

func setupAssignmentServiceTest(t *testing.T) *assignmentServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	deps := &assignmentServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      &fakeAssignmentRepository{},
		resources: &fakeResourceRepository{},
		recorder:  &fakeRecorder{},
	}
	deps.service = assignment.NewService(db, deps.repo, deps.resources, deps.recorder)
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func activeAssignment(itemID *uuid.UUID) *assignment.ResourceAssignment {
	return &assignment.ResourceAssignment{
		ID:               uuid.New(),
		ResourceID:       uuid.New(),
		EmployeeID:       uuid.New(),
		ItemID:           itemID,
		QuantityAssigned: 1,
		AssignedBy:       uuid.New(),
		Status:           assignment.StatusActive,
		AssignedAt:       time.Now().UTC(),
	}
}

func TestAssignmentService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success software resource", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		resourceID := uuid.New()
		deps.resources.findByIDFn = func(ctx context.Context, id string) (*resource.Resource, error) {
			return &resource.Resource{ID: resourceID, Name: "GitHub Enterprise", Type: resource.TypeSoftware}, nil
		}
		deps.repo.createFn = func(ctx context.Context, asg *assignment.ResourceAssignment) error {
			assert.Equal(t, assignment.StatusActive, asg.Status)
			assert.Equal(t, 1, asg.QuantityAssigned)
			assert.Equal(t, actorID, asg.AssignedBy.String())
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, actorID, assignment.CreateAssignmentRequest{
			ResourceID: resourceID.String(),
			EmployeeID: employeeID,
		})

		assert.NoError(t, err)
		assert.Equal(t, assignment.StatusActive, resp.Status)
		assert.Len(t, deps.recorder.timelines, 2)
		assert.Equal(t, "RESOURCE_ASSIGNED", deps.recorder.timelines[0].ActivityType)
		assert.Equal(t, "ASSIGNMENT_RECEIVED", deps.recorder.timelines[1].ActivityType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success with item flips item to ASSIGNED", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		resourceID := uuid.New()
		itemID := uuid.New()
		deps.resources.findByIDFn = func(ctx context.Context, id string) (*resource.Resource, error) {
			return &resource.Resource{ID: resourceID, Name: "ThinkPad X1", Type: resource.TypePhysical}, nil
		}
		deps.resources.findItemByIDFn = func(ctx context.Context, id string) (*resource.ResourceItem, error) {
			return &resource.ResourceItem{ID: itemID, ResourceID: resourceID, Status: resource.ItemAvailable}, nil
		}

		var flippedTo string
		deps.resources.updateItemStatusFn = func(ctx context.Context, id, status string) error {
			assert.Equal(t, itemID.String(), id)
			flippedTo = status
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, actorID, assignment.CreateAssignmentRequest{
			ResourceID: resourceID.String(),
			EmployeeID: employeeID,
			ItemID:     itemID.String(),
		})

		assert.NoError(t, err)
		assert.Equal(t, resource.ItemAssigned, flippedTo)
		assert.Equal(t, itemID.String(), resp.ItemID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative physical resource already assigned", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		resourceID := uuid.New()
		deps.resources.findByIDFn = func(ctx context.Context, id string) (*resource.Resource, error) {
			return &resource.Resource{ID: resourceID, Type: resource.TypePhysical}, nil
		}
		deps.repo.countActiveByResourceFn = func(ctx context.Context, rid string) (int64, error) {
			return 1, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, actorID, assignment.CreateAssignmentRequest{
			ResourceID: resourceID.String(),
			EmployeeID: employeeID,
		})

		assert.ErrorIs(t, err, assignmenterrors.ErrPhysicalAlreadyAssigned)
		assert.Empty(t, deps.recorder.timelines)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative item belongs to another resource", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		resourceID := uuid.New()
		deps.resources.findByIDFn = func(ctx context.Context, id string) (*resource.Resource, error) {
			return &resource.Resource{ID: resourceID, Type: resource.TypePhysical}, nil
		}
		deps.resources.findItemByIDFn = func(ctx context.Context, id string) (*resource.ResourceItem, error) {
			return &resource.ResourceItem{ID: uuid.New(), ResourceID: uuid.New(), Status: resource.ItemAvailable}, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, actorID, assignment.CreateAssignmentRequest{
			ResourceID: resourceID.String(),
			EmployeeID: employeeID,
			ItemID:     uuid.New().String(),
		})

		assert.ErrorIs(t, err, assignmenterrors.ErrItemWrongResource)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative item not available", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		resourceID := uuid.New()
		itemID := uuid.New()
		deps.resources.findByIDFn = func(ctx context.Context, id string) (*resource.Resource, error) {
			return &resource.Resource{ID: resourceID, Type: resource.TypePhysical}, nil
		}
		deps.resources.findItemByIDFn = func(ctx context.Context, id string) (*resource.ResourceItem, error) {
			return &resource.ResourceItem{ID: itemID, ResourceID: resourceID, Status: resource.ItemAssigned}, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, actorID, assignment.CreateAssignmentRequest{
			ResourceID: resourceID.String(),
			EmployeeID: employeeID,
			ItemID:     itemID.String(),
		})

		assert.ErrorIs(t, err, assignmenterrors.ErrItemNotAvailable)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative resource not found", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actorID, assignment.CreateAssignmentRequest{
			ResourceID: uuid.New().String(),
			EmployeeID: employeeID,
		})

		assert.ErrorIs(t, err, resourceerrors.ErrResourceNotFound)
	})
}

func TestAssignmentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	itemSyncCases := []struct {
		status     string
		itemStatus string
	}{
		{assignment.StatusReturned, resource.ItemAvailable},
		{assignment.StatusLost, resource.ItemRetired},
		{assignment.StatusDamaged, resource.ItemMaintenance},
		{assignment.StatusRevoked, resource.ItemAvailable},
	}

	for _, tc := range itemSyncCases {
		t.Run("item sync on "+tc.status, func(t *testing.T) {
			deps := setupAssignmentServiceTest(t)
			defer deps.db.Close()

			itemID := uuid.New()
			asg := activeAssignment(&itemID)
			deps.repo.findByIDFn = func(ctx context.Context, id string) (*assignment.ResourceAssignment, error) {
				return asg, nil
			}

			var itemStatus string
			deps.resources.updateItemStatusFn = func(ctx context.Context, id, status string) error {
				assert.Equal(t, itemID.String(), id)
				itemStatus = status
				return nil
			}

			expectTx(t, deps.sqlMock, true)

			resp, err := deps.service.UpdateStatus(ctx, asg.ID.String(), actorID, tc.status, "")

			assert.NoError(t, err)
			assert.Equal(t, tc.status, resp.Status)
			assert.NotEmpty(t, resp.ReturnedAt)
			assert.Equal(t, tc.itemStatus, itemStatus)
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}

	t.Run("audit and timeline written after transition", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		asg := activeAssignment(nil)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*assignment.ResourceAssignment, error) {
			return asg, nil
		}

		expectTx(t, deps.sqlMock, true)

		_, err := deps.service.UpdateStatus(ctx, asg.ID.String(), actorID, assignment.StatusReturned, "returned at desk")

		assert.NoError(t, err)
		assert.Len(t, deps.recorder.audits, 1)
		assert.Equal(t, assignment.StatusActive, deps.recorder.audits[0].OldValue)
		assert.Equal(t, assignment.StatusReturned, deps.recorder.audits[0].NewValue)
		assert.Len(t, deps.recorder.timelines, 1)
		assert.Equal(t, "ASSIGNMENT_RETURNED", deps.recorder.timelines[0].ActivityType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative non-terminal target", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpdateStatus(ctx, uuid.New().String(), actorID, assignment.StatusActive, "")

		assert.ErrorIs(t, err, assignmenterrors.ErrInvalidTransition)
	})

	t.Run("negative already terminal", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		asg := activeAssignment(nil)
		asg.Status = assignment.StatusReturned
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*assignment.ResourceAssignment, error) {
			return asg, nil
		}

		_, err := deps.service.UpdateStatus(ctx, asg.ID.String(), actorID, assignment.StatusRevoked, "")

		assert.ErrorIs(t, err, assignmenterrors.ErrAssignmentNotActive)
	})

	t.Run("negative loses the race on guarded flip", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		asg := activeAssignment(nil)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*assignment.ResourceAssignment, error) {
			return asg, nil
		}
		deps.repo.updateStatusIfActiveFn = func(ctx context.Context, id, status, notes string, returnedAt time.Time) (int64, error) {
			return 0, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.UpdateStatus(ctx, asg.ID.String(), actorID, assignment.StatusReturned, "")

		assert.ErrorIs(t, err, assignmenterrors.ErrAssignmentNotActive)
		assert.Empty(t, deps.recorder.audits)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAssignmentService_Revoke(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("success appends reason to notes", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		asg := activeAssignment(nil)
		asg.Notes = "quarterly laptop"
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*assignment.ResourceAssignment, error) {
			return asg, nil
		}

		var flipNotes string
		deps.repo.updateStatusIfActiveFn = func(ctx context.Context, id, status, notes string, returnedAt time.Time) (int64, error) {
			assert.Equal(t, assignment.StatusRevoked, status)
			flipNotes = notes
			return 1, nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Revoke(ctx, asg.ID.String(), actorID, "offboarding")

		assert.NoError(t, err)
		assert.Equal(t, assignment.StatusRevoked, resp.Status)
		assert.Equal(t, "quarterly laptop; revoked: offboarding", flipNotes)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not active", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		asg := activeAssignment(nil)
		asg.Status = assignment.StatusLost
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*assignment.ResourceAssignment, error) {
			return asg, nil
		}

		_, err := deps.service.Revoke(ctx, asg.ID.String(), actorID, "")

		assert.ErrorIs(t, err, assignmenterrors.ErrAssignmentNotActive)
	})
}

func TestAssignmentService_Delete(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("success frees item and writes timeline only", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		itemID := uuid.New()
		asg := activeAssignment(&itemID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*assignment.ResourceAssignment, error) {
			return asg, nil
		}

		var freedTo string
		deps.resources.updateItemStatusFn = func(ctx context.Context, id, status string) error {
			freedTo = status
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		err := deps.service.Delete(ctx, asg.ID.String(), actorID)

		assert.NoError(t, err)
		assert.Equal(t, resource.ItemAvailable, freedTo)
		assert.Empty(t, deps.recorder.audits)
		assert.Len(t, deps.recorder.timelines, 2)
		assert.Equal(t, "ASSIGNMENT_DELETED", deps.recorder.timelines[0].ActivityType)
		assert.Equal(t, "ASSIGNMENT_DELETED", deps.recorder.timelines[1].ActivityType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already gone", func(t *testing.T) {
		deps := setupAssignmentServiceTest(t)
		defer deps.db.Close()

		asg := activeAssignment(nil)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*assignment.ResourceAssignment, error) {
			return asg, nil
		}
		deps.repo.hardDeleteFn = func(ctx context.Context, id string) (int64, error) {
			return 0, nil
		}

		expectTx(t, deps.sqlMock, false)

		err := deps.service.Delete(ctx, asg.ID.String(), actorID)

		assert.ErrorIs(t, err, assignmenterrors.ErrAssignmentNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
