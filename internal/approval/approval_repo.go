package approval

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, wf *ApprovalWorkflow) error
	FindAll(ctx context.Context, status string, offset, limit int) ([]ApprovalWorkflow, int64, error)
	FindByID(ctx context.Context, id string) (*ApprovalWorkflow, error)

	// UpdateStatusIfPending flip PENDING -> terminal dengan guard di WHERE;
	// nol row berarti workflow sudah diputuskan (atau tidak ada).
	UpdateStatusIfPending(ctx context.Context, id, status, approverID, comments string) (int64, error)
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

func (r *repository) Create(ctx context.Context, wf *ApprovalWorkflow) error {
	return r.db.WithContext(ctx).Create(wf).Error
}

func (r *repository) FindAll(ctx context.Context, status string, offset, limit int) ([]ApprovalWorkflow, int64, error) {
	var wfs []ApprovalWorkflow
	var total int64

	query := r.db.WithContext(ctx).Model(&ApprovalWorkflow{})
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
		Find(&wfs).Error
	return wfs, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ApprovalWorkflow, error) {
	var wf ApprovalWorkflow
	err := r.db.WithContext(ctx).First(&wf, "id = ?", id).Error
	return &wf, err
}

func (r *repository) UpdateStatusIfPending(ctx context.Context, id, status, approverID, comments string) (int64, error) {
	return r.exec(ctx,
		`UPDATE approval_workflows
		 SET status = $1, approver_id = $2, comments = $3, updated_at = now()
		 WHERE id = $4 AND status = $5 AND deleted_at IS NULL`,
		status, approverID, comments, id, StatusPending,
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
