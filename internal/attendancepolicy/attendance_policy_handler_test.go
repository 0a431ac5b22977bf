package attendancepolicy_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/attendancepolicy"
	attendancepolicyerrors "go-hrm/internal/attendancepolicy/errors"

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

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeService struct {
	createFn  func(ctx context.Context, companyID string, req attendancepolicy.CreateAttendancePolicyRequest) (attendancepolicy.AttendancePolicyResponse, error)
	getByIDFn func(ctx context.Context, companyID, id string) (attendancepolicy.AttendancePolicyResponse, error)
}

func (f *fakeService) Create(ctx context.Context, companyID string, req attendancepolicy.CreateAttendancePolicyRequest) (attendancepolicy.AttendancePolicyResponse, error) {
	return f.createFn(ctx, companyID, req)
}

func (f *fakeService) GetAll(ctx context.Context, companyID string) ([]attendancepolicy.AttendancePolicyResponse, error) {
	return nil, nil
}

func (f *fakeService) GetByID(ctx context.Context, companyID, id string) (attendancepolicy.AttendancePolicyResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}

func (f *fakeService) Update(ctx context.Context, companyID, id string, req attendancepolicy.UpdateAttendancePolicyRequest) (attendancepolicy.AttendancePolicyResponse, error) {
	return attendancepolicy.AttendancePolicyResponse{}, nil
}

func (f *fakeService) Delete(ctx context.Context, companyID, id string) error { return nil }

func TestAttendancePolicyHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()

	svc := &fakeService{
		createFn: func(ctx context.Context, cid string, req attendancepolicy.CreateAttendancePolicyRequest) (attendancepolicy.AttendancePolicyResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.True(t, req.OvertimeRatePerHour.Equal(decimal.RequireFromString("12.5")))
			return attendancepolicy.AttendancePolicyResponse{ID: uuid.New().String(), Name: req.Name, OvertimeRatePerHour: req.OvertimeRatePerHour}, nil
		},
	}

	h := attendancepolicy.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance-policies", strings.NewReader(`{"name":"Default","late_arrival_grace":15,"early_departure_grace":10,"overtime_rate_per_hour":"12.5"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestAttendancePolicyHandler_Create_Invalid(t *testing.T) {
	h := attendancepolicy.NewHandler(&fakeService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance-policies", strings.NewReader(`{"late_arrival_grace":-1}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestAttendancePolicyHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeService{
		getByIDFn: func(ctx context.Context, companyID, id string) (attendancepolicy.AttendancePolicyResponse, error) {
			return attendancepolicy.AttendancePolicyResponse{}, attendancepolicyerrors.ErrPolicyNotFound
		},
	}

	h := attendancepolicy.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance-policies/x", nil)

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
