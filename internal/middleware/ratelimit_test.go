package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/evenio/ticketing/internal/config"
)

func TestTTLSeconds(t *testing.T) {
	// A sub-second TTL must not collapse to 0, which would make the
	// EXPIRE call drop the bucket state on every request.
	assert.Equal(t, int64(1), ttlSeconds(500*time.Millisecond))
	assert.Equal(t, int64(1), ttlSeconds(0))
	assert.Equal(t, int64(1), ttlSeconds(time.Second))
	assert.Equal(t, int64(90), ttlSeconds(90*time.Second))
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", nil)
	req.RemoteAddr = "10.0.0.7:55555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/orders")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "rl:ip:10.0.0.7:route:POST /v1/orders", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:10.0.0.7", buildRateKey(cfg, c))

	cfg.KeyStrategy = "route"
	assert.Equal(t, "rl:route:POST /v1/orders", buildRateKey(cfg, c))
}
