package assignment

import (
	"net/http"
	"strconv"
	"strings"

	assignmenterrors "github.com/niru8756/internal-portal-sub003/internal/assignment/errors"
	"github.com/niru8756/internal-portal-sub003/internal/employee"
	"github.com/niru8756/internal-portal-sub003/internal/shared/apperror"
	"github.com/niru8756/internal-portal-sub003/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("assignment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("assignment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	h.logger.Debug("http create assignment")
	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create assignment validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	actorID := c.GetString("employee_id")
	resp, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Debug("http get all assignments")

	employeeID := strings.TrimSpace(c.Query("employee_id"))
	resourceID := strings.TrimSpace(c.Query("resource_id"))
	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	resp, total, err := h.service.GetAll(ctx, employeeID, resourceID, status, (page-1)*pageSize, pageSize)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http get assignment by id", zap.String("assignment_id", id))

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Update membungkus tiga aksi dalam satu endpoint: return, revoke dan
// update_status. Return boleh dilakukan karyawan pemegang assignment sendiri;
// dua aksi lainnya khusus role privileged.
func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http update assignment", zap.String("assignment_id", id))

	var req UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update assignment validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	actorID := c.GetString("employee_id")
	actorRole := c.GetString("role")
	privileged := employee.IsPrivilegedRole(actorRole)

	var (
		resp AssignmentResponse
		err  error
	)
	switch req.Action {
	case ActionReturn:
		if !privileged {
			current, getErr := h.service.GetByID(ctx, id)
			if getErr != nil {
				h.writeServiceError(c, getErr)
				return
			}
			if current.EmployeeID != actorID {
				h.writeServiceError(c, assignmenterrors.ErrNotAllowed)
				return
			}
		}
		resp, err = h.service.UpdateStatus(ctx, id, actorID, StatusReturned, req.Notes)

	case ActionRevoke:
		if !privileged {
			h.writeServiceError(c, assignmenterrors.ErrNotAllowed)
			return
		}
		resp, err = h.service.Revoke(ctx, id, actorID, req.Reason)

	case ActionUpdateStatus:
		if !privileged {
			h.writeServiceError(c, assignmenterrors.ErrNotAllowed)
			return
		}
		resp, err = h.service.UpdateStatus(ctx, id, actorID, req.Status, req.Notes)
	}

	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http delete assignment", zap.String("assignment_id", id))

	actorID := c.GetString("employee_id")
	if err := h.service.Delete(ctx, id, actorID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
