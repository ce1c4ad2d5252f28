package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	redispkg "ahorros.backend/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	t.Cleanup(srv.Close)

	cli := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	redispkg.SetClient(cli)
	t.Cleanup(func() {
		redispkg.SetClient(nil)
		_ = cli.Close()
	})
	return srv
}

func idempotentRouter(userID uuid.UUID, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(UserIDKey, userID)
		c.Next()
	})
	r.POST("/api/deposits", IdempotencyMiddleware(time.Hour), handler)
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/deposits", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_NoHeaderPassthrough(t *testing.T) {
	calls := 0
	r := idempotentRouter(uuid.New(), func(c *gin.Context) {
		calls++
		c.Status(http.StatusNoContent)
	})

	require.Equal(t, http.StatusNoContent, postWithKey(r, "").Code)
	require.Equal(t, http.StatusNoContent, postWithKey(r, "").Code)
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_NoRedisPassthrough(t *testing.T) {
	redispkg.SetClient(nil)
	r := idempotentRouter(uuid.New(), func(c *gin.Context) { c.Status(http.StatusAccepted) })

	require.Equal(t, http.StatusAccepted, postWithKey(r, "idem-key").Code)
}

func TestIdempotencyMiddleware_ReplaysFirstResponse(t *testing.T) {
	startMiniRedis(t)
	calls := 0
	r := idempotentRouter(uuid.New(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"success": true, "call": calls})
	})

	first := postWithKey(r, "key-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := postWithKey(r, "key-1")
	require.Equal(t, http.StatusCreated, second.Code)
	require.Equal(t, "true", second.Header().Get(IdempotencyHit))
	require.JSONEq(t, first.Body.String(), second.Body.String())
	require.Equal(t, 1, calls)

	third := postWithKey(r, "key-2")
	require.Equal(t, http.StatusCreated, third.Code)
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_FailureReleasesKey(t *testing.T) {
	srv := startMiniRedis(t)
	userID := uuid.New()
	calls := 0
	r := idempotentRouter(userID, func(c *gin.Context) {
		calls++
		c.Status(http.StatusBadRequest)
	})

	require.Equal(t, http.StatusBadRequest, postWithKey(r, "key-1").Code)
	require.False(t, srv.Exists("idempotency:/api/deposits:"+userID.String()+":key-1"))
	require.Equal(t, http.StatusBadRequest, postWithKey(r, "key-1").Code)
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_ProcessingConflict(t *testing.T) {
	srv := startMiniRedis(t)
	userID := uuid.New()
	require.NoError(t, srv.Set("idempotency:/api/deposits:"+userID.String()+":key-1", processingMarker))

	r := idempotentRouter(userID, func(c *gin.Context) { c.Status(http.StatusCreated) })
	w := postWithKey(r, "key-1")

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), `"success":false`)
}
