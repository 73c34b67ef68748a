package access

import (
	"errors"

	accesserrors "github.com/niru8756/internal-portal-sub003/internal/access/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return accesserrors.ErrAccessNotFound
	}

	return err
}
