package approval

import (
	"errors"

	approvalerrors "github.com/niru8756/internal-portal-sub003/internal/approval/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return approvalerrors.ErrWorkflowNotFound
	}

	return err
}
