package app

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/niru8756/internal-portal-sub003/internal/access"
	"github.com/niru8756/internal-portal-sub003/internal/approval"
	"github.com/niru8756/internal-portal-sub003/internal/assignment"
	"github.com/niru8756/internal-portal-sub003/internal/audit"
	"github.com/niru8756/internal-portal-sub003/internal/auth"
	"github.com/niru8756/internal-portal-sub003/internal/document"
	"github.com/niru8756/internal-portal-sub003/internal/employee"
	"github.com/niru8756/internal-portal-sub003/internal/messaging/kafka"
	"github.com/niru8756/internal-portal-sub003/internal/onboarding"
	"github.com/niru8756/internal-portal-sub003/internal/policy"
	"github.com/niru8756/internal-portal-sub003/internal/rbac"
	"github.com/niru8756/internal-portal-sub003/internal/rbac/infra"
	"github.com/niru8756/internal-portal-sub003/internal/resource"
	"github.com/niru8756/internal-portal-sub003/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	resourceRepo := resource.NewRepository(gormDB)
	accessRepo := access.NewRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	approvalRepo := approval.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Cross-cutting ---
	recorder := audit.NewRecorder(auditRepo)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	resourceService := resource.NewService(db, resourceRepo, counterRepo, recorder)
	assignmentService := assignment.NewService(db, assignmentRepo, resourceRepo, recorder)
	approvalService := approval.NewService(
		db,
		approvalRepo,
		accessRepo,
		policyRepo,
		resourceRepo,
		assignmentService,
		employeeRepo,
		outboxRepo,
		recorder,
		approval.Config{DefaultApproverID: os.Getenv("DEFAULT_APPROVER_ID")},
	)
	accessService := access.NewService(accessRepo, approvalService, recorder)
	policyService := policy.NewService(policyRepo, recorder)
	documentService := document.NewService(documentRepo, recorder)
	onboardingService := onboarding.NewService(
		assignmentService,
		resourceRepo,
		employeeRepo,
		onboarding.Config{
			StarterResources: splitCSV(os.Getenv("ONBOARDING_STARTER_RESOURCES")),
			DefaultActorID:   os.Getenv("DEFAULT_APPROVER_ID"),
		},
	)
	authService := auth.NewService(authRepo, rbacService, employeeRepo, onboardingService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	resourceHandler := resource.NewHandler(resourceService)
	accessHandler := access.NewHandler(accessService)
	policyHandler := policy.NewHandler(policyService)
	documentHandler := document.NewHandler(documentService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	approvalHandler := approval.NewHandler(approvalService)
	onboardingHandler := onboarding.NewHandler(onboardingService)
	auditHandler := audit.NewHandler(auditRepo)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		resource.RegisterRoutes(api, resourceHandler, rbacService, logger)
		access.RegisterRoutes(api, accessHandler, rbacService, rdb, logger)
		policy.RegisterRoutes(api, policyHandler, rbacService, logger)
		document.RegisterRoutes(api, documentHandler, rbacService, logger)
		assignment.RegisterRoutes(api, assignmentHandler, rbacService, rdb, logger)
		approval.RegisterRoutes(api, approvalHandler, rbacService, rdb, logger)
		onboarding.RegisterRoutes(api, onboardingHandler, logger)
		audit.RegisterRoutes(api, auditHandler, rbacService, logger)
	}

	rbac.RegisterRoutes(router, rbacHandler)

	return nil
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
