package document

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
	documents := r.Group("/documents")
	documents.Use(middleware.AuthMiddleware())
	documents.Use(middleware.ContextLogger(logger))
	{
		documents.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "document", "read"),
			handler.GetAll,
		)

		documents.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "document", "read"),
			handler.GetById,
		)

		documents.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "document", "create"),
			handler.Create,
		)

		documents.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "document", "update"),
			handler.Update,
		)

		documents.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "document", "delete"),
			handler.Delete,
		)
	}
}
