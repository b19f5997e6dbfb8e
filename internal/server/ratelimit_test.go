package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBurstAndCleanup(t *testing.T) {
	rl := NewRateLimiter(60, time.Hour, 2, nil)
	defer rl.Close()

	assert.True(t, rl.Allow("ip:1.2.3.4"))
	assert.True(t, rl.Allow("ip:1.2.3.4"))
	assert.False(t, rl.Allow("ip:1.2.3.4"))
	assert.True(t, rl.Allow("ip:5.6.7.8"))
	assert.Equal(t, 2, rl.GetStats()["active_limiters"])

	rl.cleanup(0)
	assert.Equal(t, 0, rl.GetStats()["active_limiters"])

	// closing twice is safe
	rl.Close()
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name          string
		headers       map[string]string
		byAPIKey      bool
		byIP          bool
		wantKey       string
		wantLimitedBy string
	}{
		{"api key preferred", map[string]string{"X-API-Key": "k1"}, true, true, "api:k1", "api_key"},
		{"bearer token", map[string]string{"Authorization": "Bearer k2"}, true, false, "api:k2", "api_key"},
		{"falls back to ip", nil, true, true, "ip:192.0.2.1", "ip"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "bogus, 198.51.100.4"}, false, true, "ip:198.51.100.4", "ip"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.9"}, false, true, "ip:198.51.100.9", "ip"},
		{"nothing enabled", map[string]string{"X-API-Key": "k1"}, false, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/report", nil)
			r.RemoteAddr = "192.0.2.1:4321"
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			key, by := getRateLimitKey(r, tt.byAPIKey, tt.byIP)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantLimitedBy, by)
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcdefgh****", maskAPIKey("abcdefghijkl"))
}
