package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusOnboarding = "ONBOARDING"
	StatusOffboarded = "OFFBOARDED"
)

// Role yang punya hak istimewa pada approval dan administrasi portal.
const (
	RoleCEO   = "CEO"
	RoleCTO   = "CTO"
	RoleAdmin = "ADMIN"
)

// PrivilegedRoles adalah role yang boleh menjadi fallback approver.
var PrivilegedRoles = []string{RoleCEO, RoleCTO, RoleAdmin}

// validRoles mengikuti struktur organisasi portal; CEO/CTO/ADMIN privileged.
var validRoles = map[string]struct{}{
	RoleCEO: {}, RoleCTO: {}, RoleAdmin: {},
	"CFO": {}, "COO": {}, "CISO": {},
	"VP_ENGINEERING": {}, "VP_SALES": {}, "VP_MARKETING": {}, "VP_HR": {},
	"ENGINEERING_MANAGER": {}, "PRODUCT_MANAGER": {}, "PROJECT_MANAGER": {},
	"HR_MANAGER": {}, "FINANCE_MANAGER": {}, "IT_MANAGER": {}, "OFFICE_MANAGER": {},
	"SENIOR_ENGINEER": {}, "ENGINEER": {}, "JUNIOR_ENGINEER": {}, "QA_ENGINEER": {},
	"DEVOPS_ENGINEER": {}, "DATA_ANALYST": {}, "DESIGNER": {},
	"SALES_REPRESENTATIVE": {}, "ACCOUNT_EXECUTIVE": {}, "MARKETING_SPECIALIST": {},
	"HR_SPECIALIST": {}, "ACCOUNTANT": {}, "SUPPORT_AGENT": {},
	"CONTRACTOR": {}, "INTERN": {}, "EMPLOYEE": {},
}

func IsValidRole(role string) bool {
	_, ok := validRoles[role]
	return ok
}

func IsPrivilegedRole(role string) bool {
	for _, r := range PrivilegedRoles {
		if r == role {
			return true
		}
	}
	return false
}

type Employee struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName   string     `gorm:"type:varchar(150);not null"`
	Email      string     `gorm:"type:varchar(150);uniqueIndex:uq_employee_email"`
	Role       string     `gorm:"type:varchar(40);not null;default:'EMPLOYEE';index:idx_employees_role_status"`
	Department string     `gorm:"type:varchar(80)"`
	Status     string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_employees_role_status"`
	ManagerID  *uuid.UUID `gorm:"type:uuid"`

	Manager *Employee `gorm:"foreignKey:ManagerID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}
