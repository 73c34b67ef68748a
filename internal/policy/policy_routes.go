package policy

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
	policies := r.Group("/policies")
	policies.Use(middleware.AuthMiddleware())
	policies.Use(middleware.ContextLogger(logger))
	{
		policies.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "policy", "read"),
			handler.GetAll,
		)

		policies.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "policy", "read"),
			handler.GetById,
		)

		policies.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "policy", "create"),
			handler.Create,
		)

		policies.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "policy", "update"),
			handler.Update,
		)

		policies.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "policy", "delete"),
			handler.Delete,
		)
	}
}
