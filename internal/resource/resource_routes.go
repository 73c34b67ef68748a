package resource

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
	resources := r.Group("/resources")
	resources.Use(middleware.AuthMiddleware())
	resources.Use(middleware.ContextLogger(logger))
	{
		resources.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "resource", "read"),
			handler.GetAll,
		)

		resources.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "resource", "read"),
			handler.GetById,
		)

		resources.GET("/:id/items",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "resource", "read"),
			handler.GetItems,
		)

		resources.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "resource", "create"),
			handler.Create,
		)

		resources.POST("/:id/items",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "resource", "create"),
			handler.CreateItem,
		)

		resources.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "resource", "update"),
			handler.Update,
		)

		resources.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "resource", "delete"),
			handler.Delete,
		)
	}
}
