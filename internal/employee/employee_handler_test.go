package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/employee"
	employeeerrors "go-hrm/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	CreateFn     func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn     func(ctx context.Context, companyID string, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, error)
	GetOptionsFn func(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error)
	GetByIDFn    func(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
	UpdateFn     func(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn     func(ctx context.Context, companyID, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, companyID string, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx, companyID, filter)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error) {
	return f.GetOptionsFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withCompany(companyID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Next()
	}
}

func TestEmployeeHandler_Create(t *testing.T) {
	companyID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, "budi@example.com", req.Email)
				return employee.EmployeeResponse{ID: uuid.NewString(), EmployeeNumber: "EMP-000001", FullName: req.FullName}, nil
			},
		}
		r := setupRouter()
		r.POST("/employees", withCompany(companyID), employee.NewHandler(svc).Create)

		body := `{"full_name":"Budi","email":"budi@example.com","hire_date":"2026-01-05"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decode(t, w).Ok)
	})

	t.Run("invalid email", func(t *testing.T) {
		r := setupRouter()
		r.POST("/employees", withCompany(companyID), employee.NewHandler(&fakeEmployeeService{}).Create)

		body := `{"full_name":"Budi","email":"not-an-email","hire_date":"2026-01-05"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		r := setupRouter()
		r.POST("/employees", withCompany(companyID), employee.NewHandler(svc).Create)

		body := `{"full_name":"Budi","email":"budi@example.com","hire_date":"2026-01-05"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	companyID := uuid.NewString()
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context, cid string, filter employee.GetEmployeesFilterRequest) ([]employee.EmployeeResponse, error) {
			assert.Equal(t, "an", filter.Query)
			assert.True(t, filter.ActiveOnly)
			return []employee.EmployeeResponse{
				{ID: "1", FullName: "Citra", EmployeeNumber: "EMP-000003"},
				{ID: "2", FullName: "andi", EmployeeNumber: "EMP-000001"},
				{ID: "3", FullName: "Bagus", EmployeeNumber: "EMP-000002"},
			}, nil
		},
	}
	r := setupRouter()
	r.GET("/employees", withCompany(companyID), employee.NewHandler(svc).GetAll)

	t.Run("sorted by name", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?q=an&active_only=true", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var items []employee.EmployeeResponse
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
		require.Len(t, items, 3)
		assert.Equal(t, []string{"2", "3", "1"}, []string{items[0].ID, items[1].ID, items[2].ID})
	})

	t.Run("sorted by number desc and paged", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?q=an&active_only=true&sort_by=employee_number&sort_dir=desc&page=1&page_size=1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var items []employee.EmployeeResponse
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
		require.Len(t, items, 1)
		assert.Equal(t, "EMP-000003", items[0].EmployeeNumber)
	})
}

func TestEmployeeHandler_GetOptions(t *testing.T) {
	svc := &fakeEmployeeService{
		GetOptionsFn: func(ctx context.Context, cid string) ([]employee.EmployeeOptionResponse, error) {
			return nil, errors.New("redis and db down")
		},
	}
	r := setupRouter()
	r.GET("/employees/options", withCompany(uuid.NewString()), employee.NewHandler(svc).GetOptions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/options", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decode(t, w).Ok)
}

func TestEmployeeHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeEmployeeService{
		GetByIDFn: func(ctx context.Context, cid, id string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	r := setupRouter()
	r.GET("/employees/:id", withCompany(uuid.NewString()), employee.NewHandler(svc).GetById)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w).Error.Code)
}

func TestEmployeeHandler_Update(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeEmployeeService{
		UpdateFn: func(ctx context.Context, cid, eid string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, id, eid)
			require.NotNil(t, req.IsActive)
			assert.False(t, *req.IsActive)
			return employee.EmployeeResponse{ID: eid, IsActive: false}, nil
		},
	}
	r := setupRouter()
	r.PUT("/employees/:id", withCompany(uuid.NewString()), employee.NewHandler(svc).Update)

	body := `{"full_name":"Ayu","email":"ayu@example.com","hire_date":"2024-03-01","is_active":false}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/employees/"+id, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeHandler_Delete(t *testing.T) {
	svc := &fakeEmployeeService{
		DeleteFn: func(ctx context.Context, cid, id string) error {
			return employeeerrors.ErrEmployeeInUse
		},
	}
	r := setupRouter()
	r.DELETE("/employees/:id", withCompany(uuid.NewString()), employee.NewHandler(svc).Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusConflict, w.Code)
}
