package salarycomponent

import "github.com/shopspring/decimal"

type CreateSalaryComponentRequest struct {
	Name              string          `json:"name" binding:"required,max=100"`
	Code              string          `json:"code" binding:"required,max=30"`
	Type              string          `json:"type" binding:"required,oneof=earning deduction"`
	CalculationType   string          `json:"calculation_type" binding:"required,oneof=fixed percentage"`
	DefaultAmount     decimal.Decimal `json:"default_amount"`
	PercentageOfBasic decimal.Decimal `json:"percentage_of_basic"`
}

type UpdateSalaryComponentRequest struct {
	Name              string          `json:"name" binding:"required,max=100"`
	Type              string          `json:"type" binding:"required,oneof=earning deduction"`
	CalculationType   string          `json:"calculation_type" binding:"required,oneof=fixed percentage"`
	DefaultAmount     decimal.Decimal `json:"default_amount"`
	PercentageOfBasic decimal.Decimal `json:"percentage_of_basic"`
	IsActive          *bool           `json:"is_active"`
}

type GetSalaryComponentsFilterRequest struct {
	Type       string `form:"type" binding:"omitempty,oneof=earning deduction"`
	ActiveOnly bool   `form:"active_only"`
}

type SalaryComponentResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	Type              string          `json:"type"`
	CalculationType   string          `json:"calculation_type"`
	DefaultAmount     decimal.Decimal `json:"default_amount"`
	PercentageOfBasic decimal.Decimal `json:"percentage_of_basic"`
	IsActive          bool            `json:"is_active"`
}
