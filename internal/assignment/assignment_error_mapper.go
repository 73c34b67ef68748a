package assignment

import (
	"errors"

	assignmenterrors "github.com/niru8756/internal-portal-sub003/internal/assignment/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return assignmenterrors.ErrAssignmentNotFound
	}

	return err
}
