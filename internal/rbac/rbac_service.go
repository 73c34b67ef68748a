package rbac

import (
	"log"
	"sync"

	"github.com/niru8756/internal-portal-sub003/internal/domain"

	"github.com/casbin/casbin/v2"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy() error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer) Service {
	return &service{
		repo:     repo,
		enforcer: enforcer,
	}
}

func (s *service) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPolicyUnlocked()
}

func (s *service) loadPolicyUnlocked() error {
	s.enforcer.ClearPolicy()

	// Load grouping policy
	employeeRoles, err := s.repo.GetEmployeeRoles()
	if err != nil {
		return err
	}
	log.Printf("rbac load policy: employee_roles=%d", len(employeeRoles))

	for _, er := range employeeRoles {
		_, err := s.enforcer.AddGroupingPolicy(
			er.EmployeeID,
			er.RoleID,
		)
		if err != nil {
			return err
		}
	}

	// Load permission policy
	rolePerms, err := s.repo.GetRolePermissions()
	if err != nil {
		return err
	}
	log.Printf("rbac load policy: role_permissions=%d", len(rolePerms))

	for _, rp := range rolePerms {
		_, err := s.enforcer.AddPolicy(
			rp.RoleID,
			rp.Resource,
			rp.Action,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadPolicyUnlocked(); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.EmployeeID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		log.Printf("rbac enforce result: employee_id=%s resource=%s action=%s err=%v", req.EmployeeID, req.Resource, req.Action, err)
		return false, err
	}

	log.Printf("rbac enforce result: employee_id=%s resource=%s action=%s allowed=%t",
		req.EmployeeID, req.Resource, req.Action, allowed)

	return allowed, nil
}
