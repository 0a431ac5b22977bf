package employeesalary

import (
	"go-hrm/internal/salarycomponent"

	"github.com/shopspring/decimal"
)

type ComponentLine struct {
	ComponentID     string          `json:"component_id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	CalculationType string          `json:"calculation_type"`
	Amount          decimal.Decimal `json:"amount"`
}

type Breakdown struct {
	SalaryID        string          `json:"salary_id,omitempty"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	Earnings        []ComponentLine `json:"earnings"`
	Deductions      []ComponentLine `json:"deductions"`
	TotalEarnings   decimal.Decimal `json:"total_earnings"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}

// CalculateAllComponents applies the components named by ids, in ids order,
// to basic. Ids that do not resolve to an active component are ignored, as
// are repeats. total_earnings starts at basic, so gross equals it.
func CalculateAllComponents(basic decimal.Decimal, ids []string, components []salarycomponent.SalaryComponent) Breakdown {
	byID := make(map[string]salarycomponent.SalaryComponent, len(components))
	for _, c := range components {
		if c.IsActive {
			byID[c.ID.String()] = c
		}
	}

	b := Breakdown{
		BasicSalary:     basic,
		Earnings:        []ComponentLine{},
		Deductions:      []ComponentLine{},
		TotalEarnings:   basic,
		TotalDeductions: decimal.Zero,
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true

		line := ComponentLine{
			ComponentID:     id,
			Code:            c.Code,
			Name:            c.Name,
			CalculationType: c.CalculationType,
			Amount:          c.CalculateAmount(basic),
		}
		if c.Type == salarycomponent.TypeDeduction {
			b.Deductions = append(b.Deductions, line)
			b.TotalDeductions = b.TotalDeductions.Add(line.Amount)
			continue
		}
		b.Earnings = append(b.Earnings, line)
		b.TotalEarnings = b.TotalEarnings.Add(line.Amount)
	}

	b.GrossSalary = b.TotalEarnings
	b.NetSalary = b.GrossSalary.Sub(b.TotalDeductions)
	return b
}
