package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/attendance"
	attendanceerrors "go-hrm/internal/attendance/errors"
	"go-hrm/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

type fakeAttendanceService struct {
	clockInFn func(ctx context.Context, companyID, employeeID string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error)
	getAllFn  func(ctx context.Context, companyID, actorID string, canReadAll bool, filter attendance.GetAttendancesFilterRequest) ([]attendance.AttendanceResponse, error)
}

func (f *fakeAttendanceService) ClockIn(ctx context.Context, companyID, employeeID string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	return f.clockInFn(ctx, companyID, employeeID, req)
}

func (f *fakeAttendanceService) ClockOut(ctx context.Context, companyID, employeeID string, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) Regularize(ctx context.Context, companyID, actorID string, req attendance.RegularizeRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) SetStatus(ctx context.Context, companyID, actorID, id string, req attendance.SetStatusRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) Process(ctx context.Context, companyID, id string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool, filter attendance.GetAttendancesFilterRequest) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, companyID, actorID, canReadAll, filter)
}

func (f *fakeAttendanceService) GetByID(ctx context.Context, companyID, actorID string, canReadAll bool, id string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

type fakeRBAC struct {
	allowed map[string]bool
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.allowed[req.Resource+":"+req.Action], nil
}

func TestAttendanceHandler_ClockIn(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakeAttendanceService{
		clockInFn: func(ctx context.Context, cid, eid string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, employeeID, eid)
			in := "09:00"
			return attendance.AttendanceResponse{EmployeeID: eid, ClockIn: &in, Status: attendance.StatusPresent}, nil
		},
	}

	h := attendance.NewHandler(svc, &fakeRBAC{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/clock-in", nil)
	c.Set("company_id", companyID)
	c.Set("employee_id", employeeID)

	h.ClockIn(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestAttendanceHandler_ClockIn_Conflict(t *testing.T) {
	svc := &fakeAttendanceService{
		clockInFn: func(ctx context.Context, cid, eid string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		},
	}

	h := attendance.NewHandler(svc, &fakeRBAC{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/clock-in", strings.NewReader(`{"notes":"wfh"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())

	h.ClockIn(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
}

func TestAttendanceHandler_GetAll_ReadAllPermission(t *testing.T) {
	tests := []struct {
		name    string
		allowed map[string]bool
		want    bool
	}{
		{name: "own records only", allowed: map[string]bool{}, want: false},
		{name: "company wide", allowed: map[string]bool{"attendance:read_all": true}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotReadAll bool
			svc := &fakeAttendanceService{
				getAllFn: func(ctx context.Context, cid, aid string, canReadAll bool, filter attendance.GetAttendancesFilterRequest) ([]attendance.AttendanceResponse, error) {
					gotReadAll = canReadAll
					assert.Equal(t, "2026-03-01", filter.From)
					return []attendance.AttendanceResponse{{ID: uuid.New().String()}}, nil
				},
			}

			h := attendance.NewHandler(svc, &fakeRBAC{allowed: tt.allowed})
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/attendances?from=2026-03-01", nil)
			c.Set("company_id", uuid.New().String())
			c.Set("employee_id", uuid.New().String())

			h.GetAll(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, gotReadAll)
		})
	}
}

func TestAttendanceHandler_Regularize_ValidationError(t *testing.T) {
	h := attendance.NewHandler(&fakeAttendanceService{}, &fakeRBAC{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/regularize", strings.NewReader(`{"date":"2026-03-02"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", uuid.New().String())

	h.Regularize(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}
