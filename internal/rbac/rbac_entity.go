package rbac

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_roles_company_name"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_roles_company_name"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Role) TableName() string { return "roles" }

type Permission struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Resource string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_permissions_resource_action"`
	Action   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_permissions_resource_action"`
	Label    string    `gorm:"type:varchar(150)"`
	Category string    `gorm:"type:varchar(100)"`
}

func (Permission) TableName() string { return "permissions" }

type RolePermission struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (RolePermission) TableName() string { return "role_permissions" }

type EmployeeRole struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID     uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (EmployeeRole) TableName() string { return "employee_roles" }

// Permissions checked by the HTTP routes.
var DefaultPermissions = []Permission{
	{Resource: "shift", Action: "read", Category: "attendance"},
	{Resource: "shift", Action: "manage", Category: "attendance"},
	{Resource: "attendance_policy", Action: "manage", Category: "attendance"},
	{Resource: "attendance", Action: "create", Category: "attendance"},
	{Resource: "attendance", Action: "read", Category: "attendance"},
	{Resource: "attendance", Action: "read_all", Category: "attendance"},
	{Resource: "attendance", Action: "manage", Category: "attendance"},
	{Resource: "leave", Action: "create", Category: "leave"},
	{Resource: "leave", Action: "read", Category: "leave"},
	{Resource: "leave", Action: "approve", Category: "leave"},
	{Resource: "leave", Action: "manage", Category: "leave"},
	{Resource: "salary_component", Action: "read", Category: "payroll"},
	{Resource: "salary_component", Action: "manage", Category: "payroll"},
	{Resource: "employee_salary", Action: "read", Category: "payroll"},
	{Resource: "employee_salary", Action: "manage", Category: "payroll"},
	{Resource: "payroll", Action: "read", Category: "payroll"},
	{Resource: "payroll", Action: "create", Category: "payroll"},
	{Resource: "payroll", Action: "process", Category: "payroll"},
	{Resource: "payroll", Action: "export", Category: "payroll"},
	{Resource: "payslip", Action: "read", Category: "payroll"},
	{Resource: "payslip", Action: "generate", Category: "payroll"},
	{Resource: "employee", Action: "read", Category: "employee"},
	{Resource: "employee", Action: "create", Category: "employee"},
	{Resource: "employee", Action: "update", Category: "employee"},
	{Resource: "employee", Action: "delete", Category: "employee"},
}
