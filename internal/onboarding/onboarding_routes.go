package onboarding

import (
	"github.com/niru8756/internal-portal-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	onboardings := r.Group("/onboarding")
	onboardings.Use(middleware.AuthMiddleware())
	onboardings.Use(middleware.ContextLogger(logger))
	{
		onboardings.POST("",
			middleware.RateLimitByUser(0.2, 2),
			handler.Ensure,
		)
	}
}
