package document

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, doc *Document) error
	FindAll(ctx context.Context, category string, offset, limit int) ([]Document, int64, error)
	FindByID(ctx context.Context, id string) (*Document, error)
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, doc *Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) FindAll(ctx context.Context, category string, offset, limit int) ([]Document, int64, error) {
	var docs []Document
	var total int64

	query := r.db.WithContext(ctx).Model(&Document{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&docs).Error
	return docs, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Document, error) {
	var doc Document
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	return &doc, err
}

func (r *repository) Update(ctx context.Context, doc *Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Document{}, "id = ?", id).Error
}
