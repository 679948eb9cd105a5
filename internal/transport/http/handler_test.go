package http_test

import (
	"net/http"
	"testing"
)

func TestSessionHandler_Login(t *testing.T) {
	srv := newTestServer(t, "development")

	w := srv.do(http.MethodPost, "/jwt", `{"email":"u1@test.com","name":"U One"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["success"]; got != true {
		t.Errorf("expected success true, got %v", got)
	}

	cookie := findCookie(w, "token")
	if cookie == nil {
		t.Fatal("expected token cookie")
	}
	if !cookie.HttpOnly || cookie.Path != "/" {
		t.Errorf("expected HttpOnly cookie on /, got %+v", cookie)
	}
	if cookie.MaxAge != 0 || !cookie.Expires.IsZero() {
		t.Errorf("expected a browser-session cookie, got MaxAge=%d Expires=%v", cookie.MaxAge, cookie.Expires)
	}
}

func TestSessionHandler_Login_RejectsBadPayload(t *testing.T) {
	srv := newTestServer(t, "development")

	cases := map[string]string{
		"empty object":   `{}`,
		"not json":       `email=u1`,
		"array":          `["u1@test.com"]`,
		"reserved claim": `{"email":"u1@test.com","exp":1}`,
	}
	for name, body := range cases {
		w := srv.do(http.MethodPost, "/jwt", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, w.Code)
		}
		if findCookie(w, "token") != nil {
			t.Errorf("%s: expected no cookie", name)
		}
	}
}

func TestSessionHandler_CookieAttributesByEnvironment(t *testing.T) {
	cases := []struct {
		env      string
		secure   bool
		sameSite http.SameSite
	}{
		{"production", true, http.SameSiteNoneMode},
		{"development", false, http.SameSiteStrictMode},
		{"", false, http.SameSiteStrictMode},
	}

	for _, tc := range cases {
		srv := newTestServer(t, tc.env)
		issued := srv.login(t, "u1@test.com")
		if issued.Secure != tc.secure || issued.SameSite != tc.sameSite {
			t.Errorf("env %q issue: got Secure=%v SameSite=%v", tc.env, issued.Secure, issued.SameSite)
		}

		w := srv.do(http.MethodGet, "/logout", "", issued)
		cleared := findCookie(w, "token")
		if cleared == nil {
			t.Fatalf("env %q: expected clearing cookie", tc.env)
		}
		if cleared.Value != "" || cleared.MaxAge >= 0 {
			t.Errorf("env %q clear: expected empty expired cookie, got %+v", tc.env, cleared)
		}
		if cleared.Secure != tc.secure || cleared.SameSite != tc.sameSite || !cleared.HttpOnly || cleared.Path != "/" {
			t.Errorf("env %q clear: attributes differ from issue: %+v", tc.env, cleared)
		}
	}
}

func TestSessionHandler_LogoutWithoutSession(t *testing.T) {
	srv := newTestServer(t, "development")

	w := srv.do(http.MethodGet, "/logout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeBody(t, w)["success"]; got != true {
		t.Errorf("expected success true, got %v", got)
	}
	if findCookie(w, "token") == nil {
		t.Error("expected clearing cookie even without a session")
	}
}
