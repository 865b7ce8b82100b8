package http

import (
	"testing"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowed := []string{"http://localhost:3000", "https://*.example.com", "chrome-extension://*"}

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"exact match", "http://localhost:3000", true},
		{"wildcard prefix match", "https://app.example.com", true},
		{"extension wildcard", "chrome-extension://abcdef", true},
		{"no match", "http://evil.example.org", false},
		{"empty origin", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAllowedOrigin(tt.origin, allowed); got != tt.want {
				t.Errorf("isAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestIsValidRequestID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"valid uuid", "3e0170eb-5065-4a2e-a8a7-d0b9a1a9f3c1", true},
		{"empty", "", false},
		{"too long", string(make([]byte, 129)), false},
		{"non-printable", "abc\ndef", false},
		{"plain token", "req-12345", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidRequestID(tt.id); got != tt.want {
				t.Errorf("isValidRequestID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
