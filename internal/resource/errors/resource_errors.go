package resourceerrors

import (
	"net/http"

	"github.com/niru8756/internal-portal-sub003/internal/shared/apperror"
)

var (
	ErrResourceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)
	ErrResourceItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Resource item not found",
		http.StatusNotFound,
	)
	ErrSerialAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Resource item with the same serial number already exists",
		http.StatusConflict,
	)
	ErrItemsOnlyForPhysical = apperror.New(
		apperror.CodeInvalidInput,
		"Serialized items are only supported for PHYSICAL resources",
		http.StatusBadRequest,
	)
	ErrInvalidResourceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid resource ID",
		http.StatusBadRequest,
	)
)
