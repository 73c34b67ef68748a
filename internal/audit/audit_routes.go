package audit

import (
	"github.com/niru8756/internal-portal-sub003/internal/middleware"
	"github.com/niru8756/internal-portal-sub003/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	group := r.Group("")
	group.Use(middleware.AuthMiddleware())
	group.Use(middleware.ContextLogger(logger))
	{
		group.GET("/audit",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "audit", "read"),
			handler.ListAuditLogs,
		)

		group.GET("/timeline/:entityType/:entityId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "audit", "read"),
			handler.GetTimeline,
		)
	}
}
