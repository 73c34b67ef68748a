package assignmenterrors

import (
	"net/http"

	"github.com/niru8756/internal-portal-sub003/internal/shared/apperror"
)

var (
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Assignment not found",
		http.StatusNotFound,
	)
	ErrAssignmentNotActive = apperror.New(
		apperror.CodeInvalidState,
		"Assignment is no longer active",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Assignment status can only move from ACTIVE to a terminal status",
		http.StatusBadRequest,
	)
	ErrPhysicalAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"Physical resource already has an active assignment",
		http.StatusConflict,
	)
	ErrItemNotAvailable = apperror.New(
		apperror.CodeConflict,
		"Resource item is not available",
		http.StatusConflict,
	)
	ErrItemWrongResource = apperror.New(
		apperror.CodeInvalidInput,
		"Resource item does not belong to the requested resource",
		http.StatusBadRequest,
	)
	ErrNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to perform this action on the assignment",
		http.StatusForbidden,
	)
)
