package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	tradcvErrors "tradcv/internal/errors"
)

func TestLimiterManagerAllow(t *testing.T) {
	logger, err := tradcvErrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	m := NewLimiterManager(60, 2, logger)
	defer m.Close()

	// Burst capacity admits the first two requests immediately
	if !m.Allow("ip:10.0.0.1") {
		t.Error("first request should be allowed")
	}
	if !m.Allow("ip:10.0.0.1") {
		t.Error("second request within burst should be allowed")
	}
	if m.Allow("ip:10.0.0.1") {
		t.Error("third request should exceed burst capacity")
	}

	// A different key has its own bucket
	if !m.Allow("ip:10.0.0.2") {
		t.Error("request from different key should be allowed")
	}
}

func TestLimiterManagerStats(t *testing.T) {
	logger, err := tradcvErrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	m := NewLimiterManager(120, 5, logger)
	defer m.Close()

	m.Allow("ip:10.0.0.1")
	m.Allow("api:some-key")

	stats := m.GetStats()
	if stats["active_limiters"] != 2 {
		t.Errorf("expected 2 active limiters, got %v", stats["active_limiters"])
	}
	if stats["rate_per_minute"] != 120.0 {
		t.Errorf("expected 120 requests/min, got %v", stats["rate_per_minute"])
	}
	if stats["burst_capacity"] != 5 {
		t.Errorf("expected burst capacity 5, got %v", stats["burst_capacity"])
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		byAPIKey bool
		byIP     bool
		header   map[string]string
		want     string
	}{
		{
			name:     "api key preferred",
			byAPIKey: true,
			byIP:     true,
			header:   map[string]string{"X-API-Key": "key-one"},
			want:     "api:key-one",
		},
		{
			name:     "bearer token used as api key",
			byAPIKey: true,
			header:   map[string]string{"Authorization": "Bearer key-two"},
			want:     "api:key-two",
		},
		{
			name: "ip fallback",
			byIP: true,
			want: "ip:192.0.2.1",
		},
		{
			name: "nothing enabled",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
			req.RemoteAddr = "192.0.2.1:54321"
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			if got := getRateLimitKey(req, tt.byAPIKey, tt.byIP); got != tt.want {
				t.Errorf("expected key %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{
			name:   "x-forwarded-for first ip",
			header: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			remote: "192.0.2.1:1234",
			want:   "203.0.113.7",
		},
		{
			name:   "x-real-ip",
			header: map[string]string{"X-Real-IP": "203.0.113.9"},
			remote: "192.0.2.1:1234",
			want:   "203.0.113.9",
		},
		{
			name:   "remote addr fallback",
			remote: "192.0.2.1:1234",
			want:   "192.0.2.1",
		},
		{
			name:   "invalid forwarded header ignored",
			header: map[string]string{"X-Forwarded-For": "not-an-ip"},
			remote: "192.0.2.1:1234",
			want:   "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			if got := getClientIP(req); got != tt.want {
				t.Errorf("expected IP %q, got %q", tt.want, got)
			}
		})
	}
}
