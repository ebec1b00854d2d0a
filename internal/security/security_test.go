package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("movie-night-9")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == "movie-night-9" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !CheckPassword("movie-night-9", hash) {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword("wrong-password", hash) {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestCSRFTokenRoundTrip(t *testing.T) {
	g := NewCSRFGenerator("secret-key")

	token, err := g.GenerateToken("session-abc")
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	if !g.ValidateToken("session-abc", token) {
		t.Error("ValidateToken() rejected a valid token")
	}
	if g.ValidateToken("session-xyz", token) {
		t.Error("ValidateToken() accepted a token for another session")
	}
	if g.ValidateToken("session-abc", token+"0") {
		t.Error("ValidateToken() accepted a tampered token")
	}
	if g.ValidateToken("session-abc", "") {
		t.Error("ValidateToken() accepted an empty token")
	}
}

func TestCSRFTokenRequiresSession(t *testing.T) {
	g := NewCSRFGenerator("secret-key")
	if _, err := g.GenerateToken(""); err == nil {
		t.Error("GenerateToken(\"\") did not fail")
	}
}

func TestCSRFTokensDifferPerSecret(t *testing.T) {
	a := NewCSRFGenerator("secret-one")
	b := NewCSRFGenerator("secret-two")

	token, _ := a.GenerateToken("session-abc")
	if b.ValidateToken("session-abc", token) {
		t.Error("a token signed with one secret validated under another")
	}
}

func TestRateLimiterAllowsUpToRate(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit was allowed")
	}

	// Other IPs have their own allowance
	if !rl.Allow("10.0.0.2") {
		t.Error("fresh IP was denied")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "forwarded chain takes first hop",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			remote:  "10.0.0.1:1234",
			want:    "203.0.113.9",
		},
		{
			name:    "real ip header",
			headers: map[string]string{"X-Real-IP": "203.0.113.7"},
			remote:  "10.0.0.1:1234",
			want:    "203.0.113.7",
		},
		{
			name:   "falls back to remote addr",
			remote: "192.0.2.4:5678",
			want:   "192.0.2.4:5678",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionCookieFlags(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	cookie := CreateSessionCookie(r, "session_id", "abc", time.Now().Add(time.Hour))

	if !cookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}
	if cookie.Secure {
		t.Error("session cookie is Secure on a plain HTTP request")
	}

	r.Header.Set("X-Forwarded-Proto", "https")
	cookie = CreateSessionCookie(r, "session_id", "abc", time.Now().Add(time.Hour))
	if !cookie.Secure {
		t.Error("session cookie is not Secure behind a TLS proxy")
	}

	del := CreateDeleteCookie(r, "session_id")
	if del.MaxAge != -1 {
		t.Errorf("delete cookie MaxAge = %d, want -1", del.MaxAge)
	}
}
