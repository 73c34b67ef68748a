package audit

import (
	"net/http"
	"strconv"

	"github.com/niru8756/internal-portal-sub003/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{repo: repo, logger: l}
}

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}

func (h *Handler) ListAuditLogs(c *gin.Context) {
	ctx := c.Request.Context()
	entityType := c.Query("entity_type")
	page, pageSize := pagination(c)

	logs, total, err := h.repo.FindAuditLogs(ctx, entityType, (page-1)*pageSize, pageSize)
	if err != nil {
		h.logger.Error("list audit logs failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load audit logs", nil)
		return
	}

	resp := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = mapAuditToResponse(l)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetTimeline(c *gin.Context) {
	ctx := c.Request.Context()
	entityType := c.Param("entityType")
	entityID := c.Param("entityId")
	page, pageSize := pagination(c)

	activities, total, err := h.repo.FindTimeline(ctx, entityType, entityID, (page-1)*pageSize, pageSize)
	if err != nil {
		h.logger.Error("get timeline failed",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load timeline", nil)
		return
	}

	resp := make([]TimelineActivityResponse, len(activities))
	for i, a := range activities {
		resp[i] = mapTimelineToResponse(a)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}
