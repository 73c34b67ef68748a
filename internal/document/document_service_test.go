package document_test

import (
	"context"
	"testing"

	"github.com/niru8756/internal-portal-sub003/internal/audit"
	"github.com/niru8756/internal-portal-sub003/internal/document"
	documenterrors "github.com/niru8756/internal-portal-sub003/internal/document/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDocumentRepository struct {
	createFn   func(ctx context.Context, doc *document.Document) error
	findByIDFn func(ctx context.Context, id string) (*document.Document, error)
	updateFn   func(ctx context.Context, doc *document.Document) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeDocumentRepository) Create(ctx context.Context, doc *document.Document) error {
	if f.createFn != nil {
		return f.createFn(ctx, doc)
	}
	return nil
}

func (f *fakeDocumentRepository) FindAll(ctx context.Context, category string, offset, limit int) ([]document.Document, int64, error) {
	return nil, 0, nil
}

func (f *fakeDocumentRepository) FindByID(ctx context.Context, id string) (*document.Document, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDocumentRepository) Update(ctx context.Context, doc *document.Document) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, doc)
	}
	return nil
}

func (f *fakeDocumentRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
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

func setupDocumentServiceTest(t *testing.T) (document.Service, *fakeDocumentRepository, *fakeRecorder) {
	t.Helper()
	repo := &fakeDocumentRepository{}
	recorder := &fakeRecorder{}
	return document.NewService(repo, recorder), repo, recorder
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success starts as draft", func(t *testing.T) {
		svc, repo, recorder := setupDocumentServiceTest(t)

		ownerID := uuid.New().String()
		repo.createFn = func(ctx context.Context, doc *document.Document) error {
			assert.Equal(t, document.StatusDraft, doc.Status)
			assert.Equal(t, ownerID, doc.OwnerID.String())
			assert.Equal(t, "HR", doc.Category)
			return nil
		}

		resp, err := svc.Create(ctx, document.CreateDocumentRequest{
			Title:       "Employee Handbook 2026",
			OwnerID:     ownerID,
			Category:    "HR",
			StoragePath: "docs/hr/handbook-2026.pdf",
		})

		assert.NoError(t, err)
		assert.Equal(t, document.StatusDraft, resp.Status)
		assert.Len(t, recorder.timelines, 1)
		assert.Equal(t, "DOCUMENT_CREATED", recorder.timelines[0].ActivityType)
		assert.Equal(t, resp.ID, recorder.timelines[0].EntityID)
	})

	t.Run("negative invalid owner id", func(t *testing.T) {
		svc, repo, recorder := setupDocumentServiceTest(t)
		repo.createFn = func(ctx context.Context, doc *document.Document) error {
			t.Fatal("create should not be called for an invalid owner id")
			return nil
		}

		_, err := svc.Create(ctx, document.CreateDocumentRequest{
			Title:   "Orphan Document",
			OwnerID: "not-a-uuid",
		})

		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
		assert.Empty(t, recorder.timelines)
	})
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()

	existing := func(status string) *document.Document {
		return &document.Document{
			ID:          uuid.New(),
			Title:       "Incident Response Runbook",
			OwnerID:     uuid.MustParse(ownerID),
			Category:    "IT",
			Status:      status,
			StoragePath: "docs/it/runbook.pdf",
		}
	}

	t.Run("status change writes audit entry", func(t *testing.T) {
		svc, repo, recorder := setupDocumentServiceTest(t)

		doc := existing(document.StatusDraft)
		repo.findByIDFn = func(ctx context.Context, id string) (*document.Document, error) {
			return doc, nil
		}

		resp, err := svc.Update(ctx, doc.ID.String(), document.UpdateDocumentRequest{
			Title:       doc.Title,
			OwnerID:     ownerID,
			Category:    doc.Category,
			StoragePath: doc.StoragePath,
			Status:      document.StatusPublished,
		})

		assert.NoError(t, err)
		assert.Equal(t, document.StatusPublished, resp.Status)
		assert.Len(t, recorder.audits, 1)
		assert.Equal(t, "status", recorder.audits[0].FieldChanged)
		assert.Equal(t, document.StatusDraft, recorder.audits[0].OldValue)
		assert.Equal(t, document.StatusPublished, recorder.audits[0].NewValue)
	})

	t.Run("same status skips audit", func(t *testing.T) {
		svc, repo, recorder := setupDocumentServiceTest(t)

		doc := existing(document.StatusPublished)
		repo.findByIDFn = func(ctx context.Context, id string) (*document.Document, error) {
			return doc, nil
		}

		resp, err := svc.Update(ctx, doc.ID.String(), document.UpdateDocumentRequest{
			Title:       "Incident Response Runbook v2",
			OwnerID:     ownerID,
			Category:    doc.Category,
			StoragePath: doc.StoragePath,
			Status:      document.StatusPublished,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Incident Response Runbook v2", resp.Title)
		assert.Empty(t, recorder.audits)
	})

	t.Run("negative document not found", func(t *testing.T) {
		svc, _, _ := setupDocumentServiceTest(t)

		_, err := svc.Update(ctx, uuid.New().String(), document.UpdateDocumentRequest{
			Title:   "Ghost",
			OwnerID: ownerID,
			Status:  document.StatusArchived,
		})

		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := setupDocumentServiceTest(t)

		doc := &document.Document{ID: uuid.New(), Title: "Old Org Chart", OwnerID: uuid.New()}
		repo.findByIDFn = func(ctx context.Context, id string) (*document.Document, error) {
			return doc, nil
		}
		deleted := false
		repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = true
			assert.Equal(t, doc.ID.String(), id)
			return nil
		}

		err := svc.Delete(ctx, doc.ID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("negative document not found", func(t *testing.T) {
		svc, _, _ := setupDocumentServiceTest(t)

		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
	})
}
