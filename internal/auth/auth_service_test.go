package auth_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/niru8756/internal-portal-sub003/internal/auth"
	autherrors "github.com/niru8756/internal-portal-sub003/internal/auth/errors"
	"github.com/niru8756/internal-portal-sub003/internal/domain"
	"github.com/niru8756/internal-portal-sub003/internal/employee"
	employeeerrors "github.com/niru8756/internal-portal-sub003/internal/employee/errors"
	"github.com/niru8756/internal-portal-sub003/internal/onboarding"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRBACService struct {
	loadPolicyCalls int
}

func (f *fakeRBACService) LoadPolicy() error {
	f.loadPolicyCalls++
	return nil
}

func (f *fakeRBACService) Enforce(req domain.EnforceRequest) (bool, error) {
	return true, nil
}

type fakeEmployeeDirectory struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeDirectory) WithTx(tx *sql.Tx) employee.Repository                     { return f }
func (f *fakeEmployeeDirectory) Create(ctx context.Context, empl *employee.Employee) error { return nil }
func (f *fakeEmployeeDirectory) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeDirectory) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeDirectory) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeDirectory) FindFirstByRole(ctx context.Context, role string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeDirectory) FindFirstActiveByRoles(ctx context.Context, roles []string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeDirectory) Update(ctx context.Context, empl *employee.Employee) error { return nil }
func (f *fakeEmployeeDirectory) Delete(ctx context.Context, id string) error               { return nil }

func (f *fakeEmployeeDirectory) ReassignPolicyOwnership(ctx context.Context, fromID, toID string) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeDirectory) ReassignDocumentOwnership(ctx context.Context, fromID, toID string) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeDirectory) ReassignResourceOwnership(ctx context.Context, fromID, toID string) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeDirectory) ReassignResourceCustody(ctx context.Context, fromID, toID string) (int64, error) {
	return 0, nil
}

func (f *fakeEmployeeDirectory) RepointManager(ctx context.Context, fromID, toID string) (int64, error) {
	return 0, nil
}

type fakeOnboardingService struct {
	mu    sync.Mutex
	calls []string
	done  chan struct{}
}

func (f *fakeOnboardingService) EnsureResources(ctx context.Context, employeeID, actorID string) (onboarding.Summary, error) {
	f.mu.Lock()
	f.calls = append(f.calls, employeeID)
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
	return onboarding.Summary{}, nil
}

type authServiceDeps struct {
	service    auth.Service
	repo       *fakeAuthRepository
	rbac       *fakeRBACService
	employees  *fakeEmployeeDirectory
	onboarding *fakeOnboardingService
}

func setupAuthServiceTest(t *testing.T) *authServiceDeps {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	deps := &authServiceDeps{
		repo:       &fakeAuthRepository{},
		rbac:       &fakeRBACService{},
		employees:  &fakeEmployeeDirectory{},
		onboarding: &fakeOnboardingService{},
	}
	deps.service = auth.NewService(deps.repo, deps.rbac, deps.employees, deps.onboarding)
	return deps
}

func hashPassword(t *testing.T, raw string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues tokens and kicks onboarding", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		deps.onboarding.done = make(chan struct{})

		employeeID := uuid.New()
		user := &auth.User{
			ID:         uuid.New(),
			EmployeeID: &employeeID,
			Email:      "jane@portal.local",
			Name:       "Jane",
			Password:   hashPassword(t, "s3cret"),
			Role:       employee.RoleCTO,
		}
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			assert.Equal(t, user.Email, email)
			return user, nil
		}

		accessToken, refreshToken, resp, err := deps.service.Login(ctx, user.Email, "s3cret")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, employeeID.String(), resp.EmployeeID)
		assert.Equal(t, employee.RoleCTO, resp.Role)
		assert.Equal(t, 1, deps.rbac.loadPolicyCalls)

		select {
		case <-deps.onboarding.done:
		case <-time.After(2 * time.Second):
			t.Fatal("onboarding kick never happened")
		}
		assert.Equal(t, []string{employeeID.String()}, deps.onboarding.calls)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		deps := setupAuthServiceTest(t)

		user := &auth.User{
			ID:       uuid.New(),
			Email:    "jane@portal.local",
			Password: hashPassword(t, "s3cret"),
			Role:     "EMPLOYEE",
		}
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		}

		_, _, _, err := deps.service.Login(ctx, user.Email, "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		deps := setupAuthServiceTest(t)

		_, _, _, err := deps.service.Login(ctx, "nobody@portal.local", "s3cret")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success round trip", func(t *testing.T) {
		deps := setupAuthServiceTest(t)

		employeeID := uuid.New()
		user := &auth.User{
			ID:         uuid.New(),
			EmployeeID: &employeeID,
			Email:      "jane@portal.local",
			Name:       "Jane",
			Password:   hashPassword(t, "s3cret"),
			Role:       "EMPLOYEE",
		}
		deps.repo.getByEmailFn = func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		}
		deps.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		}

		_, refreshToken, _, err := deps.service.Login(ctx, user.Email, "s3cret")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := deps.service.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.ID.String(), resp.ID)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		deps := setupAuthServiceTest(t)

		_, _, _, err := deps.service.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success role follows directory", func(t *testing.T) {
		deps := setupAuthServiceTest(t)

		employeeID := uuid.New()
		deps.employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: employeeID, Role: employee.RoleAdmin, Status: "ACTIVE"}, nil
		}

		var created *auth.User
		deps.repo.createFn = func(ctx context.Context, user *auth.User) error {
			created = user
			return nil
		}

		resp, err := deps.service.Register(ctx, auth.RegisterRequest{
			EmployeeID: employeeID.String(),
			Email:      "admin@portal.local",
			Name:       "Admin",
			Password:   "s3cret",
		})

		assert.NoError(t, err)
		assert.Equal(t, employee.RoleAdmin, resp.Role)
		assert.Equal(t, employee.RoleAdmin, created.Role)
		assert.True(t, created.IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret")))
		assert.Equal(t, 1, deps.rbac.loadPolicyCalls)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupAuthServiceTest(t)

		_, err := deps.service.Register(ctx, auth.RegisterRequest{
			EmployeeID: uuid.New().String(),
			Email:      "ghost@portal.local",
			Name:       "Ghost",
			Password:   "s3cret",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
