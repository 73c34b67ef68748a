package approval

import (
	"github.com/niru8756/internal-portal-sub003/internal/middleware"
	"github.com/niru8756/internal-portal-sub003/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	approvals := r.Group("/approvals")
	approvals.Use(middleware.AuthMiddleware())
	approvals.Use(middleware.ContextLogger(logger))
	{
		approvals.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "approval", "read"),
			handler.GetAll,
		)

		approvals.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "approval", "read"),
			handler.GetById,
		)

		approvals.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "approval", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		approvals.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "approval", "decide"),
			middleware.Idempotency(rdb),
			handler.Decide,
		)
	}
}
