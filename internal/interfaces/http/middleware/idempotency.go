package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	domainerrors "ahorros.backend/internal/domain/errors"
	"ahorros.backend/internal/interfaces/http/response"
	"ahorros.backend/pkg/logger"
	"ahorros.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	IdempotencyHit    = "X-Idempotency-Hit"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type storedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// IdempotencyMiddleware replays the first successful response for a repeated
// Idempotency-Key. Without the header, or without Redis, requests pass through.
func IdempotencyMiddleware(retention time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s:%s", c.FullPath(), userID, key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil:
			if val == processingMarker {
				response.ErrorWithError(c, http.StatusConflict, domainerrors.CodeConflict, "Request already in progress")
				c.Abort()
				return
			}
			var stored storedResponse
			if err := json.Unmarshal([]byte(val), &stored); err != nil {
				logger.Warn(ctx, "Discarding unreadable idempotency record", zap.String("key", storageKey), zap.Error(err))
				_ = redisDel(ctx, storageKey)
				c.Next()
				return
			}
			c.Header(IdempotencyHit, "true")
			c.Data(stored.Status, "application/json; charset=utf-8", []byte(stored.Body))
			c.Abort()
			return
		case !redis.IsMiss(err):
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			response.ErrorWithError(c, http.StatusConflict, domainerrors.CodeConflict, "Request already in progress")
			c.Abort()
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			payload, err := json.Marshal(storedResponse{Status: status, Body: w.body.String()})
			if err == nil {
				err = redisSet(ctx, storageKey, string(payload), retention)
			}
			if err != nil {
				logger.Warn(ctx, "Failed to store idempotent response", zap.String("key", storageKey), zap.Error(err))
				_ = redisDel(ctx, storageKey)
			}
			return
		}
		// Failed requests may be retried with the same key
		_ = redisDel(ctx, storageKey)
	}
}
