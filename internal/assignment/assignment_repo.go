package assignment

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, asg *ResourceAssignment) error
	FindAll(ctx context.Context, employeeID, resourceID, status string, offset, limit int) ([]ResourceAssignment, int64, error)
	FindByID(ctx context.Context, id string) (*ResourceAssignment, error)
	CountActiveByResource(ctx context.Context, resourceID string) (int64, error)

	// UpdateStatusIfActive flip status dengan guard ACTIVE; nol row berarti
	// assignment sudah terminal atau tidak ada.
	UpdateStatusIfActive(ctx context.Context, id, status, notes string, returnedAt time.Time) (int64, error)
	HardDelete(ctx context.Context, id string) (int64, error)
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

// Create pakai raw insert supaya tetap berada di transaksi yang sama dengan
// flip status item.
func (r *repository) Create(ctx context.Context, asg *ResourceAssignment) error {
	var itemID any
	if asg.ItemID != nil {
		itemID = asg.ItemID.String()
	}
	_, err := r.exec(ctx,
		`INSERT INTO resource_assignments
		 (id, resource_id, employee_id, item_id, quantity_assigned, assigned_by, status, notes, assigned_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`,
		asg.ID.String(), asg.ResourceID.String(), asg.EmployeeID.String(), itemID,
		asg.QuantityAssigned, asg.AssignedBy.String(), asg.Status, asg.Notes, asg.AssignedAt,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context, employeeID, resourceID, status string, offset, limit int) ([]ResourceAssignment, int64, error) {
	var asgs []ResourceAssignment
	var total int64

	query := r.db.WithContext(ctx).Model(&ResourceAssignment{})
	if employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	if resourceID != "" {
		query = query.Where("resource_id = ?", resourceID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("assigned_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&asgs).Error
	return asgs, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ResourceAssignment, error) {
	var asg ResourceAssignment
	err := r.db.WithContext(ctx).First(&asg, "id = ?", id).Error
	return &asg, err
}

func (r *repository) CountActiveByResource(ctx context.Context, resourceID string) (int64, error) {
	query := `SELECT COUNT(*) FROM resource_assignments WHERE resource_id = $1 AND status = $2`

	var count int64
	if r.tx != nil {
		err := r.tx.QueryRowContext(ctx, query, resourceID, StatusActive).Scan(&count)
		return count, err
	}
	err := r.db.WithContext(ctx).Raw(query, resourceID, StatusActive).Scan(&count).Error
	return count, err
}

func (r *repository) UpdateStatusIfActive(ctx context.Context, id, status, notes string, returnedAt time.Time) (int64, error) {
	return r.exec(ctx,
		`UPDATE resource_assignments
		 SET status = $1, notes = $2, returned_at = $3, updated_at = now()
		 WHERE id = $4 AND status = $5`,
		status, notes, returnedAt, id, StatusActive,
	)
}

func (r *repository) HardDelete(ctx context.Context, id string) (int64, error) {
	return r.exec(ctx, `DELETE FROM resource_assignments WHERE id = $1`, id)
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
