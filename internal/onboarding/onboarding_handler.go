package onboarding

import (
	"net/http"

	"github.com/niru8756/internal-portal-sub003/internal/employee"
	"github.com/niru8756/internal-portal-sub003/internal/shared/apperror"
	"github.com/niru8756/internal-portal-sub003/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EnsureRequest struct {
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("onboarding.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("onboarding.handler")
	}
	return &Handler{service: service, logger: l}
}

// Ensure menjalankan starter-kit assignment untuk diri sendiri, atau untuk
// karyawan lain kalau pemanggil punya role privileged.
func (h *Handler) Ensure(c *gin.Context) {
	ctx := c.Request.Context()
	actorID := c.GetString("employee_id")

	var req EnsureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http onboarding validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	targetID := req.EmployeeID
	if targetID == "" {
		targetID = actorID
	}
	if targetID != actorID && !employee.IsPrivilegedRole(c.GetString("role")) {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
			"Only privileged roles can onboard another employee", nil)
		return
	}

	summary, err := h.service.EnsureResources(ctx, targetID, actorID)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("onboarding request failed",
			zap.String("employee_id", targetID),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, summary, nil)
}
