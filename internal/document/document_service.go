package document

import (
	"context"
	"errors"

	"github.com/niru8756/internal-portal-sub003/internal/audit"
	documenterrors "github.com/niru8756/internal-portal-sub003/internal/document/errors"
	"github.com/niru8756/internal-portal-sub003/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDocumentRequest) (DocumentResponse, error)
	GetAll(ctx context.Context, category string, offset, limit int) ([]DocumentResponse, int64, error)
	GetByID(ctx context.Context, id string) (DocumentResponse, error)
	Update(ctx context.Context, id string, req UpdateDocumentRequest) (DocumentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDocumentRequest) (DocumentResponse, error) {
	s.logger.Debug("create document requested", zap.String("title", req.Title))

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrDocumentNotFound
	}

	doc := &Document{
		ID:          uuid.New(),
		Title:       req.Title,
		OwnerID:     ownerID,
		Category:    req.Category,
		Status:      StatusDraft,
		StoragePath: req.StoragePath,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		s.logger.Error("create document persist failed", zap.Error(err))
		return DocumentResponse{}, mapError(err)
	}

	s.recorder.Timeline(ctx, audit.TimelineEntry{
		EntityType:   audit.EntityDocument,
		EntityID:     doc.ID.String(),
		ActivityType: "DOCUMENT_CREATED",
		Title:        "Document uploaded",
		Description:  doc.Title,
		PerformedBy:  contextutil.GetActorID(ctx),
	})

	s.logger.Info("create document success", zap.String("document_id", doc.ID.String()))
	return mapDocumentToResponse(*doc), nil
}

func (s *service) GetAll(ctx context.Context, category string, offset, limit int) ([]DocumentResponse, int64, error) {
	docs, total, err := s.repo.FindAll(ctx, category, offset, limit)
	if err != nil {
		s.logger.Error("get all documents failed", zap.Error(err))
		return nil, 0, mapError(err)
	}

	resp := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		resp[i] = mapDocumentToResponse(d)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DocumentResponse, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get document by id failed", zap.String("document_id", id), zap.Error(err))
		return DocumentResponse{}, mapError(err)
	}
	return mapDocumentToResponse(*doc), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDocumentRequest) (DocumentResponse, error) {
	s.logger.Debug("update document requested", zap.String("document_id", id))

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DocumentResponse{}, mapError(err)
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrDocumentNotFound
	}

	oldStatus := doc.Status

	doc.Title = req.Title
	doc.OwnerID = ownerID
	doc.Category = req.Category
	doc.StoragePath = req.StoragePath
	doc.Status = req.Status

	if err := s.repo.Update(ctx, doc); err != nil {
		s.logger.Error("update document persist failed", zap.Error(err))
		return DocumentResponse{}, mapError(err)
	}

	if oldStatus != doc.Status {
		s.recorder.Audit(ctx, audit.AuditEntry{
			EntityType:   audit.EntityDocument,
			EntityID:     doc.ID.String(),
			ChangedBy:    contextutil.GetActorID(ctx),
			FieldChanged: "status",
			OldValue:     oldStatus,
			NewValue:     doc.Status,
		})
	}

	s.logger.Info("update document success", zap.String("document_id", id))
	return mapDocumentToResponse(*doc), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete document requested", zap.String("document_id", id))

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete document failed", zap.Error(err))
		return mapError(err)
	}

	s.logger.Info("delete document success", zap.String("document_id", id))
	return nil
}

func mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return documenterrors.ErrDocumentNotFound
	}
	return err
}

func mapDocumentToResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:          doc.ID.String(),
		Title:       doc.Title,
		OwnerID:     doc.OwnerID.String(),
		Category:    doc.Category,
		Status:      doc.Status,
		StoragePath: doc.StoragePath,
	}
}
