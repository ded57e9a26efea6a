package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitKey_KeyedByPathAndClientIP(t *testing.T) {
	assert.Equal(t, "rate_limit:/api/v1/templates:10.0.0.1",
		rateLimitKey("/api/v1/templates", "10.0.0.1"))
	assert.Equal(t, "rate_limit:/api/v1/contact:192.168.1.5",
		rateLimitKey("/api/v1/contact", "192.168.1.5"))
}

func TestRateLimitMiddleware_FailsClosedWhenRedisUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	router := setupTestRouter()
	router.Use(RateLimitMiddleware(client, 10, time.Minute))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
