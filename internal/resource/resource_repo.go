package resource

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=resource_repo.go -destination=mock/resource_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, res *Resource) error
	FindAll(ctx context.Context, resourceType string, offset, limit int) ([]Resource, int64, error)
	FindByID(ctx context.Context, id string) (*Resource, error)
	FindByName(ctx context.Context, name string) (*Resource, error)
	Update(ctx context.Context, res *Resource) error
	Delete(ctx context.Context, id string) error

	CreateItem(ctx context.Context, item *ResourceItem) error
	FindItemByID(ctx context.Context, id string) (*ResourceItem, error)
	FindItemsByResource(ctx context.Context, resourceID string) ([]ResourceItem, error)
	UpdateItemStatus(ctx context.Context, id, status string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, res *Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *repository) FindAll(ctx context.Context, resourceType string, offset, limit int) ([]Resource, int64, error) {
	var resources []Resource
	var total int64

	q := r.db.WithContext(ctx).Model(&Resource{})
	if resourceType != "" {
		q = q.Where("type = ?", resourceType)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&resources).Error
	return resources, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Resource, error) {
	var res Resource
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	return &res, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*Resource, error) {
	var res Resource
	err := r.db.WithContext(ctx).First(&res, "name = ?", name).Error
	return &res, err
}

func (r *repository) Update(ctx context.Context, res *Resource) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Resource{}, "id = ?", id).Error
}

func (r *repository) CreateItem(ctx context.Context, item *ResourceItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindItemByID(ctx context.Context, id string) (*ResourceItem, error) {
	var item ResourceItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	return &item, err
}

func (r *repository) FindItemsByResource(ctx context.Context, resourceID string) ([]ResourceItem, error) {
	var items []ResourceItem
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) UpdateItemStatus(ctx context.Context, id, status string) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx,
			`UPDATE resource_items SET status = $1, updated_at = now() WHERE id = $2`,
			status, id,
		)
		return err
	}
	return r.db.WithContext(ctx).
		Model(&ResourceItem{}).
		Where("id = ?", id).
		Update("status", status).Error
}
