package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

const createdBody = `{"ok":true,"data":{"id":"run-1"}}`

func newIdempotentRouter(t *testing.T, calls *int) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id_validated", "user-1")
		c.Next()
	})
	r.Use(middleware.Idempotency(rdb))
	r.POST("/payroll-runs", func(c *gin.Context) {
		*calls++
		c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(createdBody))
	})
	return r, mock
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll-runs", nil)
	if key != "" {
		req.Header.Set(middleware.IdempotencyHeader, key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_FirstRequestIsStored(t *testing.T) {
	calls := 0
	r, mock := newIdempotentRouter(t, &calls)
	cacheKey := middleware.IdempotencyCacheKey("/payroll-runs", "user-1", "abc")

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 2*time.Minute).SetVal(true)
	mock.ExpectSet(cacheKey, "201\n"+createdBody, 24*time.Hour).SetVal("OK")
	mock.ExpectDel(cacheKey + ":lock").SetVal(1)

	w := postWithKey(r, "abc")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, createdBody, w.Body.String())
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	calls := 0
	r, mock := newIdempotentRouter(t, &calls)
	cacheKey := middleware.IdempotencyCacheKey("/payroll-runs", "user-1", "abc")

	mock.ExpectGet(cacheKey).SetVal("201\n" + createdBody)

	w := postWithKey(r, "abc")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, createdBody, w.Body.String())
	assert.Equal(t, 0, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentRequestGetsConflict(t *testing.T) {
	calls := 0
	r, mock := newIdempotentRouter(t, &calls)
	cacheKey := middleware.IdempotencyCacheKey("/payroll-runs", "user-1", "abc")

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 2*time.Minute).SetVal(false)

	w := postWithKey(r, "abc")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.Equal(t, 0, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_WithoutKeyPassesThrough(t *testing.T) {
	calls := 0
	r, mock := newIdempotentRouter(t, &calls)

	w := postWithKey(r, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
