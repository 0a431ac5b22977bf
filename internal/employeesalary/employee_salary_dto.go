package employeesalary

import "github.com/shopspring/decimal"

type CreateEmployeeSalaryRequest struct {
	EmployeeID    string          `json:"employee_id" binding:"required,uuid"`
	BasicSalary   decimal.Decimal `json:"basic_salary"`
	ComponentIDs  []string        `json:"component_ids" binding:"omitempty,dive,uuid"`
	EffectiveDate string          `json:"effective_date" binding:"required"`
	IsActive      *bool           `json:"is_active"`
}

type GetEmployeeSalariesFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	ActiveOnly bool   `form:"active_only"`
}

type EmployeeSalaryResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	BasicSalary   decimal.Decimal `json:"basic_salary"`
	ComponentIDs  []string        `json:"component_ids"`
	IsActive      bool            `json:"is_active"`
	EffectiveDate string          `json:"effective_date"`
}
