package documenterrors

import (
	"net/http"

	"github.com/niru8756/internal-portal-sub003/internal/shared/apperror"
)

var ErrDocumentNotFound = apperror.New(
	apperror.CodeNotFound,
	"Document not found",
	http.StatusNotFound,
)
