package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader   = "Idempotency-Key"
	idempotencyTTL      = 24 * time.Hour
	idempotencyLockTTL  = 2 * time.Minute
	idempotencyLockMark = "locked"
)

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a POST carrying the same
// Idempotency-Key for the same user and route. A second request arriving
// while the first is still running gets 409. Redis failures fail open.
func Idempotency(rdb *redis.Client, logger ...*zap.Logger) gin.HandlerFunc {
	log := zap.L().Named("middleware.idempotency")
	if len(logger) > 0 && logger[0] != nil {
		log = logger[0].Named("middleware.idempotency")
	}

	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := IdempotencyCacheKey(c.FullPath(), c.GetString("user_id_validated"), idempKey)
		lockKey := cacheKey + ":lock"

		cached, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			if status, body, ok := decodeStoredResponse(cached); ok {
				c.Data(status, "application/json; charset=utf-8", body)
				c.Abort()
				return
			}
		} else if err != redis.Nil {
			log.Warn("idempotency lookup failed", zap.String("key", cacheKey), zap.Error(err))
			c.Next()
			return
		}

		acquired, err := rdb.SetNX(ctx, lockKey, idempotencyLockMark, idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed", zap.String("key", lockKey), zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			inProgress := apperror.ErrRequestInProgress
			response.Error(c, inProgress.HTTPStatus, inProgress.Code, inProgress.Message, nil)
			c.Abort()
			return
		}

		writer := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		if status := writer.Status(); status >= 200 && status < 300 {
			if err := rdb.Set(ctx, cacheKey, encodeStoredResponse(status, writer.body.Bytes()), idempotencyTTL).Err(); err != nil {
				log.Warn("idempotency store failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
		if err := rdb.Del(ctx, lockKey).Err(); err != nil {
			log.Warn("idempotency unlock failed", zap.String("key", lockKey), zap.Error(err))
		}
	}
}

func IdempotencyCacheKey(route, userID, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", route, userID, key)
}

// Stored as "<status>\n<body>".
func encodeStoredResponse(status int, body []byte) string {
	return strconv.Itoa(status) + "\n" + string(body)
}

func decodeStoredResponse(v string) (int, []byte, bool) {
	head, body, found := strings.Cut(v, "\n")
	if !found {
		return 0, nil, false
	}
	status, err := strconv.Atoi(head)
	if err != nil {
		return 0, nil, false
	}
	return status, []byte(body), true
}
