package approval

import (
	"context"
	"errors"

	approvalerrors "github.com/niru8756/internal-portal-sub003/internal/approval/errors"
	"github.com/niru8756/internal-portal-sub003/internal/employee"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// resolveApprover menentukan siapa yang tercatat sebagai approver SEBELUM ada
// write apa pun. Urutan fallback:
//  1. id eksplisit dari request (kalau tidak dikenal, lanjut ke fallback);
//  2. default approver dari konfigurasi;
//  3. CEO pertama;
//  4. karyawan ACTIVE pertama dengan role privileged;
//  5. CEO lagi (siapa tahu baru dibuat di antara dua lookup).
//
// Tidak ada satupun -> CONFIGURATION_ERROR, request gagal tanpa menulis.
func resolveApprover(
	ctx context.Context,
	employees employee.Repository,
	explicitID, defaultApproverID string,
	logger *zap.Logger,
) (*employee.Employee, error) {
	if explicitID != "" {
		appr, err := employees.FindByID(ctx, explicitID)
		if err == nil {
			return appr, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		logger.Warn("requested approver not found, falling back",
			zap.String("approver_id", explicitID),
		)
	}

	if defaultApproverID != "" {
		appr, err := employees.FindByID(ctx, defaultApproverID)
		if err == nil {
			return appr, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		logger.Warn("configured default approver not found, falling back",
			zap.String("default_approver_id", defaultApproverID),
		)
	}

	appr, err := employees.FindFirstByRole(ctx, employee.RoleCEO)
	if err == nil {
		return appr, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	appr, err = employees.FindFirstActiveByRoles(ctx, employee.PrivilegedRoles)
	if err == nil {
		return appr, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	appr, err = employees.FindFirstByRole(ctx, employee.RoleCEO)
	if err == nil {
		return appr, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, approvalerrors.ErrNoApproverAvailable
}
