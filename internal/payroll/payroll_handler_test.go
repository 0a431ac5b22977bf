package payroll_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/payroll"
	payrollerrors "go-hrm/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
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

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayrollService struct {
	payroll.Service
	createRunFn func(ctx context.Context, companyID, actorID string, req payroll.CreatePayrollRunRequest) (payroll.PayrollRunResponse, error)
	processFn   func(ctx context.Context, companyID, actorID, runID string) (payroll.PayrollRunResponse, error)
	getAllFn    func(ctx context.Context, companyID string, filter payroll.GetPayrollRunsFilterRequest) ([]payroll.PayrollRunResponse, error)
	exportFn    func(ctx context.Context, companyID, runID string) ([]byte, string, error)
	deleteFn    func(ctx context.Context, companyID, id string) error
}

func (f *fakePayrollService) CreateRun(ctx context.Context, companyID, actorID string, req payroll.CreatePayrollRunRequest) (payroll.PayrollRunResponse, error) {
	return f.createRunFn(ctx, companyID, actorID, req)
}

func (f *fakePayrollService) Process(ctx context.Context, companyID, actorID, runID string) (payroll.PayrollRunResponse, error) {
	return f.processFn(ctx, companyID, actorID, runID)
}

func (f *fakePayrollService) GetAll(ctx context.Context, companyID string, filter payroll.GetPayrollRunsFilterRequest) ([]payroll.PayrollRunResponse, error) {
	return f.getAllFn(ctx, companyID, filter)
}

func (f *fakePayrollService) ExportXLSX(ctx context.Context, companyID, runID string) ([]byte, string, error) {
	return f.exportFn(ctx, companyID, runID)
}

func (f *fakePayrollService) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func TestPayrollHandler_Create(t *testing.T) {
	companyID := uuid.NewString()
	actorID := uuid.NewString()

	svc := &fakePayrollService{
		createRunFn: func(ctx context.Context, cid, aid string, req payroll.CreatePayrollRunRequest) (payroll.PayrollRunResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, "2026-06-01", req.PayPeriodStart)
			return payroll.PayrollRunResponse{ID: uuid.NewString(), Reference: "PR-202606-0001", Status: payroll.StatusDraft}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"pay_period_start":"2026-06-01","pay_period_end":"2026-06-30"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", companyID)
	c.Set("user_id_validated", actorID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPayrollHandler_Create_ValidationError(t *testing.T) {
	h := payroll.NewHandler(&fakePayrollService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs", strings.NewReader(`{"pay_period_start":"2026-06-01"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestPayrollHandler_Process_InvalidState(t *testing.T) {
	runID := uuid.NewString()
	svc := &fakePayrollService{
		processFn: func(ctx context.Context, companyID, actorID, id string) (payroll.PayrollRunResponse, error) {
			assert.Equal(t, runID, id)
			return payroll.PayrollRunResponse{}, payrollerrors.ErrProcessOnlyDraft
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payroll-runs/"+runID+"/process", nil)
	c.Params = []gin.Param{{Key: "id", Value: runID}}
	c.Set("company_id", uuid.NewString())
	c.Set("employee_id", uuid.NewString())

	h.Process(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}

func TestPayrollHandler_GetAll_Paginates(t *testing.T) {
	svc := &fakePayrollService{
		getAllFn: func(ctx context.Context, companyID string, filter payroll.GetPayrollRunsFilterRequest) ([]payroll.PayrollRunResponse, error) {
			assert.Equal(t, "completed", filter.Status)
			return []payroll.PayrollRunResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll-runs?status=completed&page=2&page_size=2", nil)
	c.Set("company_id", uuid.NewString())

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	var items []payroll.PayrollRunResponse
	assert.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 1)
	assert.Equal(t, "c", items[0].ID)
}

func TestPayrollHandler_GetAll_InternalError(t *testing.T) {
	svc := &fakePayrollService{
		getAllFn: func(ctx context.Context, companyID string, filter payroll.GetPayrollRunsFilterRequest) ([]payroll.PayrollRunResponse, error) {
			return nil, errors.New("boom")
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll-runs", nil)
	c.Set("company_id", uuid.NewString())

	h.GetAll(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
}

func TestPayrollHandler_Export(t *testing.T) {
	svc := &fakePayrollService{
		exportFn: func(ctx context.Context, companyID, runID string) ([]byte, string, error) {
			return []byte("xlsx"), "PR-202606-0001.xlsx", nil
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/payroll-runs/x/export", nil)
	c.Params = []gin.Param{{Key: "id", Value: "x"}}
	c.Set("company_id", uuid.NewString())

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "PR-202606-0001.xlsx")
	assert.Equal(t, "xlsx", w.Body.String())
}

func TestPayrollHandler_Delete(t *testing.T) {
	svc := &fakePayrollService{
		deleteFn: func(ctx context.Context, cid, id string) error {
			return payrollerrors.ErrPayrollRunNotFound
		},
	}

	h := payroll.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/payroll-runs/x", nil)
	c.Params = []gin.Param{{Key: "id", Value: "x"}}
	c.Set("company_id", uuid.NewString())

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
