package assignment

import (
	"github.com/niru8756/internal-portal-sub003/internal/employee"
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
	assignments := r.Group("/assignments")
	assignments.Use(middleware.AuthMiddleware())
	assignments.Use(middleware.ContextLogger(logger))
	{
		assignments.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "assignment", "read"),
			handler.GetAll,
		)

		assignments.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "assignment", "read"),
			handler.GetById,
		)

		assignments.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "assignment", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		assignments.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "assignment", "update"),
			middleware.Idempotency(rdb),
			handler.Update,
		)

		assignments.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RoleMiddleware(employee.PrivilegedRoles...),
			handler.Delete,
		)
	}
}
