package access

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=access_repo.go -destination=mock/access_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *Access) error
	FindAll(ctx context.Context, employeeID, status string, offset, limit int) ([]Access, int64, error)
	FindByID(ctx context.Context, id string) (*Access, error)
	Delete(ctx context.Context, id string) error

	// Status flips dipanggil dari transaksi keputusan approval.
	MarkApproved(ctx context.Context, id, approverID string) (int64, error)
	MarkRevoked(ctx context.Context, id, approverID string) (int64, error)
	SetResourceID(ctx context.Context, id, resourceID string) (int64, error)
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

func (r *repository) Create(ctx context.Context, rec *Access) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindAll(ctx context.Context, employeeID, status string, offset, limit int) ([]Access, int64, error) {
	var recs []Access
	var total int64

	query := r.db.WithContext(ctx).Model(&Access{})
	if employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&recs).Error
	return recs, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Access, error) {
	var rec Access
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Access{}, "id = ?", id).Error
}

func (r *repository) MarkApproved(ctx context.Context, id, approverID string) (int64, error) {
	return r.exec(ctx,
		`UPDATE access_records
		 SET status = $1, approver_id = $2, approved_at = now(), revoked_at = NULL, updated_at = now()
		 WHERE id = $3 AND deleted_at IS NULL`,
		StatusApproved, approverID, id,
	)
}

func (r *repository) MarkRevoked(ctx context.Context, id, approverID string) (int64, error) {
	return r.exec(ctx,
		`UPDATE access_records
		 SET status = $1, approver_id = $2, revoked_at = now(), approved_at = NULL, updated_at = now()
		 WHERE id = $3 AND deleted_at IS NULL`,
		StatusRevoked, approverID, id,
	)
}

func (r *repository) SetResourceID(ctx context.Context, id, resourceID string) (int64, error) {
	return r.exec(ctx,
		`UPDATE access_records SET resource_id = $1, updated_at = now() WHERE id = $2 AND deleted_at IS NULL`,
		resourceID, id,
	)
}

func (r *repository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	if r.tx == nil {
		res := r.db.WithContext(ctx).Exec(query, args...)
		return res.RowsAffected, res.Error
	}
	res, err := r.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
