package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		dbErr      error
		redisErr   error
		wantStatus int
		wantBody   string
	}{
		{name: "healthy", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{name: "database down", dbErr: errors.New("conn refused"), wantStatus: http.StatusServiceUnavailable, wantBody: "SERVICE_UNAVAILABLE"},
		{name: "redis down", redisErr: errors.New("dial tcp"), wantStatus: http.StatusServiceUnavailable, wantBody: `"redis"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer db.Close()
			rdb, rmock := redismock.NewClientMock()

			ping := mock.ExpectPing()
			if tt.dbErr != nil {
				ping.WillReturnError(tt.dbErr)
			} else if tt.redisErr != nil {
				rmock.ExpectPing().SetErr(tt.redisErr)
			} else {
				rmock.ExpectPing().SetVal("PONG")
			}

			r := gin.New()
			r.GET("/healthz", healthHandler(db, rdb))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NoError(t, mock.ExpectationsWereMet())
			assert.NoError(t, rmock.ExpectationsWereMet())
		})
	}
}
