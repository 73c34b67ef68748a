package policyerrors

import (
	"net/http"

	"github.com/niru8756/internal-portal-sub003/internal/shared/apperror"
)

var (
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Policy not found",
		http.StatusNotFound,
	)
	ErrPolicyArchived = apperror.New(
		apperror.CodeInvalidState,
		"Archived policy cannot be modified",
		http.StatusBadRequest,
	)
)
