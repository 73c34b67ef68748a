package accesserrors

import (
	"net/http"

	"github.com/niru8756/internal-portal-sub003/internal/shared/apperror"
)

var (
	ErrAccessNotFound = apperror.New(
		apperror.CodeNotFound,
		"Access request not found",
		http.StatusNotFound,
	)
	ErrAccessTargetRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Either resource_id or hardware_request is required",
		http.StatusBadRequest,
	)
	ErrAccessAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Access request has already been decided",
		http.StatusBadRequest,
	)
)
