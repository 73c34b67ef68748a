package policy

import (
	"errors"

	policyerrors "github.com/niru8756/internal-portal-sub003/internal/policy/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policyerrors.ErrPolicyNotFound
	}

	return err
}
