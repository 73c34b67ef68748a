package approvalerrors

import (
	"net/http"

	"github.com/niru8756/internal-portal-sub003/internal/shared/apperror"
)

var (
	ErrWorkflowNotFound = apperror.New(
		apperror.CodeNotFound,
		"Approval workflow not found",
		http.StatusNotFound,
	)
	ErrWorkflowAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Approval workflow has already been decided",
		http.StatusBadRequest,
	)
	ErrInvalidWorkflowPayload = apperror.New(
		apperror.CodeInvalidInput,
		"Workflow payload is missing required fields for its type",
		http.StatusBadRequest,
	)
	ErrNoApproverAvailable = apperror.New(
		apperror.CodeConfigurationError,
		"No approver is configured or available",
		http.StatusInternalServerError,
	)
	ErrLinkedRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Record linked to the workflow not found",
		http.StatusNotFound,
	)
)
