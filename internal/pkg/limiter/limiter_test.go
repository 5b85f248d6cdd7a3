package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"agora/internal/pkg/auth/jwt"
)

func TestAllowIsPerKey(t *testing.T) {
	l := NewRateLimiter(rate.Limit(0.001), 2)
	defer l.Close()

	assert.True(t, l.Allow("ip:1"))
	assert.True(t, l.Allow("ip:1"))
	assert.False(t, l.Allow("ip:1"))

	assert.True(t, l.Allow("ip:2"))
	assert.Same(t, l.GetLimiter("ip:1"), l.GetLimiter("ip:1"))
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "203.0.113.9:5555"
	assert.Equal(t, "ip:203.0.113.9", ClientKey(r))

	r = r.WithContext(jwt.WithPayload(r.Context(), &jwt.Payload{ID: "user-1"}))
	assert.Equal(t, "user:user-1", ClientKey(r))
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	l := NewRateLimiter(rate.Limit(0.001), 1)
	defer l.Close()

	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() int {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.RemoteAddr = "198.51.100.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestCloseIsIdempotent(t *testing.T) {
	l := NewRateLimiter(rate.Limit(1), 1)
	assert.NotPanics(t, func() {
		l.Close()
		l.Close()
	})
}
