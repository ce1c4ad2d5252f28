package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyMiddleware_WithHookedRedis(t *testing.T) {
	origGet := redisGet
	origSet := redisSet
	origSetNX := redisSetNX
	origDel := redisDel
	t.Cleanup(func() {
		redisGet = origGet
		redisSet = origSet
		redisSetNX = origSetNX
		redisDel = origDel
	})

	deleted := 0
	redisDel = func(context.Context, ...string) error {
		deleted++
		return nil
	}

	t.Run("lock lost to a concurrent request", func(t *testing.T) {
		redisGet = func(context.Context, string) (string, error) { return "", missErr() }
		redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return false, nil }

		r := idempotentRouter(uuid.New(), func(c *gin.Context) { c.Status(http.StatusCreated) })
		require.Equal(t, http.StatusConflict, postWithKey(r, "key-1").Code)
	})

	t.Run("unreadable record is dropped", func(t *testing.T) {
		deleted = 0
		redisGet = func(context.Context, string) (string, error) { return "not-json", nil }

		r := idempotentRouter(uuid.New(), func(c *gin.Context) { c.Status(http.StatusCreated) })
		require.Equal(t, http.StatusCreated, postWithKey(r, "key-2").Code)
		require.Equal(t, 1, deleted)
	})

	t.Run("store failure releases lock", func(t *testing.T) {
		deleted = 0
		redisGet = func(context.Context, string) (string, error) { return "", missErr() }
		redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return true, nil }
		redisSet = func(context.Context, string, interface{}, time.Duration) error { return errors.New("oom") }

		r := idempotentRouter(uuid.New(), func(c *gin.Context) { c.String(http.StatusCreated, `{"id":1}`) })
		require.Equal(t, http.StatusCreated, postWithKey(r, "key-3").Code)
		require.Equal(t, 1, deleted)
	})

	t.Run("lookup error passes through", func(t *testing.T) {
		redisGet = func(context.Context, string) (string, error) { return "", errors.New("dial tcp: refused") }

		r := idempotentRouter(uuid.New(), func(c *gin.Context) { c.Status(http.StatusAccepted) })
		require.Equal(t, http.StatusAccepted, postWithKey(r, "key-4").Code)
	})
}

func missErr() error {
	return redisv9.Nil
}
