package employee

type CreateEmployeeRequest struct {
	EmployeeNumber     string `json:"employee_number" binding:"omitempty,max=30"`
	FullName           string `json:"full_name" binding:"required,max=150"`
	Email              string `json:"email" binding:"required,email"`
	HireDate           string `json:"hire_date" binding:"required"`
	ShiftID            string `json:"shift_id" binding:"omitempty,uuid"`
	AttendancePolicyID string `json:"attendance_policy_id" binding:"omitempty,uuid"`
}

type UpdateEmployeeRequest struct {
	FullName           string `json:"full_name" binding:"required,max=150"`
	Email              string `json:"email" binding:"required,email"`
	HireDate           string `json:"hire_date" binding:"required"`
	IsActive           *bool  `json:"is_active"`
	ShiftID            string `json:"shift_id" binding:"omitempty,uuid"`
	AttendancePolicyID string `json:"attendance_policy_id" binding:"omitempty,uuid"`
}

type GetEmployeesFilterRequest struct {
	Query      string `form:"q"`
	ActiveOnly bool   `form:"active_only"`
	SortBy     string `form:"sort_by"`
	SortDir    string `form:"sort_dir"`
}

type EmployeeResponse struct {
	ID                 string `json:"id"`
	CompanyID          string `json:"company_id"`
	EmployeeNumber     string `json:"employee_number"`
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	HireDate           string `json:"hire_date"`
	IsActive           bool   `json:"is_active"`
	ShiftID            string `json:"shift_id,omitempty"`
	AttendancePolicyID string `json:"attendance_policy_id,omitempty"`
}

type EmployeeOptionResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}
