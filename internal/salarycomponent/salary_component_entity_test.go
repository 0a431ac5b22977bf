package salarycomponent_test

import (
	"testing"

	"go-hrm/internal/salarycomponent"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSalaryComponent_CalculateAmount(t *testing.T) {
	tests := []struct {
		name      string
		component salarycomponent.SalaryComponent
		basic     string
		want      string
	}{
		{
			name:      "percentage of basic",
			component: salarycomponent.SalaryComponent{CalculationType: salarycomponent.CalculationPercentage, PercentageOfBasic: decimal.NewFromInt(10)},
			basic:     "3000",
			want:      "300",
		},
		{
			name:      "percentage rounds to cents",
			component: salarycomponent.SalaryComponent{CalculationType: salarycomponent.CalculationPercentage, PercentageOfBasic: decimal.RequireFromString("7.5")},
			basic:     "1234.56",
			want:      "92.59",
		},
		{
			name:      "fixed ignores basic",
			component: salarycomponent.SalaryComponent{CalculationType: salarycomponent.CalculationFixed, DefaultAmount: decimal.NewFromInt(50), PercentageOfBasic: decimal.NewFromInt(99)},
			basic:     "3000",
			want:      "50",
		},
		{
			name:      "fixed with zero basic",
			component: salarycomponent.SalaryComponent{CalculationType: salarycomponent.CalculationFixed, DefaultAmount: decimal.RequireFromString("12.345")},
			basic:     "0",
			want:      "12.35",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.component.CalculateAmount(decimal.RequireFromString(tt.basic))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), got.String())
		})
	}
}
