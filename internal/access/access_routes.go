package access

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
	accesses := r.Group("/access")
	accesses.Use(middleware.AuthMiddleware())
	accesses.Use(middleware.ContextLogger(logger))
	{
		accesses.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "access", "read"),
			handler.GetAll,
		)

		accesses.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "access", "read"),
			handler.GetById,
		)

		accesses.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "access", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		accesses.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "access", "delete"),
			handler.Delete,
		)
	}
}
