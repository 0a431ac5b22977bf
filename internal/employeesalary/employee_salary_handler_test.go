package employeesalary_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/employeesalary"
	employeesalaryerrors "go-hrm/internal/employeesalary/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type fakeEmployeeSalaryService struct {
	employeesalary.Service
	createFn             func(ctx context.Context, companyID string, req employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error)
	getActiveBreakdownFn func(ctx context.Context, companyID, employeeID string) (employeesalary.Breakdown, error)
}

func (f *fakeEmployeeSalaryService) Create(ctx context.Context, companyID string, req employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error) {
	return f.createFn(ctx, companyID, req)
}

func (f *fakeEmployeeSalaryService) GetActiveBreakdown(ctx context.Context, companyID, employeeID string) (employeesalary.Breakdown, error) {
	return f.getActiveBreakdownFn(ctx, companyID, employeeID)
}

func TestEmployeeSalaryHandler_Create(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakeEmployeeSalaryService{
		createFn: func(ctx context.Context, cid string, req employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.True(t, decimal.RequireFromString("3000.50").Equal(req.BasicSalary))
			return employeesalary.EmployeeSalaryResponse{ID: uuid.New().String(), EmployeeID: req.EmployeeID, IsActive: true}, nil
		},
	}

	h := employeesalary.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"employee_id":"` + employeeID + `","basic_salary":"3000.50","component_ids":[],"effective_date":"2026-01-01"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/employee-salaries", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", companyID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestEmployeeSalaryHandler_Create_InvalidComponentID(t *testing.T) {
	h := employeesalary.NewHandler(&fakeEmployeeSalaryService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"employee_id":"` + uuid.New().String() + `","basic_salary":100,"component_ids":["nope"],"effective_date":"2026-01-01"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/employee-salaries", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeSalaryHandler_GetActiveBreakdown_NotFound(t *testing.T) {
	svc := &fakeEmployeeSalaryService{
		getActiveBreakdownFn: func(ctx context.Context, companyID, employeeID string) (employeesalary.Breakdown, error) {
			return employeesalary.Breakdown{}, employeesalaryerrors.ErrActiveSalaryNotFound
		},
	}

	h := employeesalary.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	employeeID := uuid.New().String()
	c.Request = httptest.NewRequest(http.MethodGet, "/employee-salaries/active/"+employeeID, nil)
	c.Params = []gin.Param{{Key: "employee_id", Value: employeeID}}
	c.Set("company_id", uuid.New().String())

	h.GetActiveBreakdown(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
