package policy

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, pol *Policy) error
	FindAll(ctx context.Context, status string, offset, limit int) ([]Policy, int64, error)
	FindByID(ctx context.Context, id string) (*Policy, error)
	Update(ctx context.Context, pol *Policy) error
	Delete(ctx context.Context, id string) error

	// SetDecision dipanggil dari transaksi keputusan approval:
	// flip status + refresh last_review_date sekaligus.
	SetDecision(ctx context.Context, id, status string) (int64, error)
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

func (r *repository) Create(ctx context.Context, pol *Policy) error {
	return r.db.WithContext(ctx).Create(pol).Error
}

func (r *repository) FindAll(ctx context.Context, status string, offset, limit int) ([]Policy, int64, error) {
	var pols []Policy
	var total int64

	query := r.db.WithContext(ctx).Model(&Policy{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&pols).Error
	return pols, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Policy, error) {
	var pol Policy
	err := r.db.WithContext(ctx).First(&pol, "id = ?", id).Error
	return &pol, err
}

func (r *repository) Update(ctx context.Context, pol *Policy) error {
	return r.db.WithContext(ctx).Save(pol).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Policy{}, "id = ?", id).Error
}

func (r *repository) SetDecision(ctx context.Context, id, status string) (int64, error) {
	return r.exec(ctx,
		`UPDATE policies
		 SET status = $1, last_review_date = now(), updated_at = now()
		 WHERE id = $2 AND deleted_at IS NULL`,
		status, id,
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
