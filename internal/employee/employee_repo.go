package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindFirstByRole(ctx context.Context, role string) (*Employee, error)
	FindFirstActiveByRoles(ctx context.Context, roles []string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error

	// Reassign repoints kepemilikan lintas tabel; harus dipanggil dalam transaksi.
	ReassignPolicyOwnership(ctx context.Context, fromID, toID string) (int64, error)
	ReassignDocumentOwnership(ctx context.Context, fromID, toID string) (int64, error)
	ReassignResourceOwnership(ctx context.Context, fromID, toID string) (int64, error)
	ReassignResourceCustody(ctx context.Context, fromID, toID string) (int64, error)
	RepointManager(ctx context.Context, fromID, toID string) (int64, error)
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "full_name", "email", "role", "department", "status").
		Where("status = ?", StatusActive).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Manager").
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindFirstByRole(ctx context.Context, role string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at ASC").
		First(&empl).Error
	return &empl, err
}

func (r *repository) FindFirstActiveByRoles(ctx context.Context, roles []string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Where("role IN ?", roles).
		Where("status = ?", StatusActive).
		Order("created_at ASC").
		First(&empl).Error
	return &empl, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) ReassignPolicyOwnership(ctx context.Context, fromID, toID string) (int64, error) {
	return r.exec(ctx, `UPDATE policies SET owner_id = $1, updated_at = now() WHERE owner_id = $2`, toID, fromID)
}

func (r *repository) ReassignDocumentOwnership(ctx context.Context, fromID, toID string) (int64, error) {
	return r.exec(ctx, `UPDATE documents SET owner_id = $1, updated_at = now() WHERE owner_id = $2`, toID, fromID)
}

func (r *repository) ReassignResourceOwnership(ctx context.Context, fromID, toID string) (int64, error) {
	return r.exec(ctx, `UPDATE resources SET owner_id = $1, updated_at = now() WHERE owner_id = $2`, toID, fromID)
}

func (r *repository) ReassignResourceCustody(ctx context.Context, fromID, toID string) (int64, error) {
	return r.exec(ctx, `UPDATE resources SET custodian_id = $1, updated_at = now() WHERE custodian_id = $2`, toID, fromID)
}

func (r *repository) RepointManager(ctx context.Context, fromID, toID string) (int64, error) {
	return r.exec(ctx, `UPDATE employees SET manager_id = $1, updated_at = now() WHERE manager_id = $2 AND deleted_at IS NULL`, toID, fromID)
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
