package resource

import (
	"errors"
	"strings"

	resourceerrors "github.com/niru8756/internal-portal-sub003/internal/resource/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return resourceerrors.ErrResourceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_resource_item_serial" {
			return resourceerrors.ErrSerialAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_resource_item_serial") {
		return resourceerrors.ErrSerialAlreadyExists
	}

	return err
}
