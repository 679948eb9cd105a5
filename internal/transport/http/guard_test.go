package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appsession "github.com/astro-web3/volunteer-management/internal/app/session"
	"github.com/astro-web3/volunteer-management/internal/domain/session"
	httptransport "github.com/astro-web3/volunteer-management/internal/transport/http"
	"github.com/gin-gonic/gin"
)

var ownerRoutes = []string{"/needVolunteer/", "/beVolunteer/", "/myRequest/"}

func TestGuard_OwnerScenario(t *testing.T) {
	srv := newTestServer(t, "development")
	u1 := srv.login(t, "u1@test.com")

	for _, prefix := range ownerRoutes {
		w := srv.do(http.MethodGet, prefix+"u1@test.com", "", u1)
		if w.Code != http.StatusOK {
			t.Errorf("%s own email: expected 200, got %d: %s", prefix, w.Code, w.Body.String())
		}

		w = srv.do(http.MethodGet, prefix+"u2@test.com", "", u1)
		if w.Code != http.StatusForbidden {
			t.Errorf("%s other email: expected 403, got %d", prefix, w.Code)
		}
		if got := decodeBody(t, w)["message"]; got != "forbidden access" {
			t.Errorf("%s: unexpected 403 message %v", prefix, got)
		}

		w = srv.do(http.MethodGet, prefix+"u1@test.com", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s no cookie: expected 401, got %d", prefix, w.Code)
		}
		if got := decodeBody(t, w)["message"]; got != "unauthorized access" {
			t.Errorf("%s: unexpected 401 message %v", prefix, got)
		}
	}
}

func TestGuard_UnauthenticatedBeatsForbidden(t *testing.T) {
	srv := newTestServer(t, "development")

	// No credential on someone else's resource is 401, never 403.
	w := srv.do(http.MethodGet, "/needVolunteer/u2@test.com", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestGuard_RejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t, "development")
	good := srv.login(t, "u1@test.com")

	past := time.Now().Add(-2 * session.DefaultTTL)
	oldIssuer, err := session.NewService(testSecret, session.DefaultTTL,
		session.WithClock(func() time.Time { return past }))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	expired, _, err := oldIssuer.Issue(context.Background(), session.Claims{"email": "u1@test.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	foreignIssuer, err := session.NewService(strings.Repeat("x", 32), session.DefaultTTL)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	foreign, _, err := foreignIssuer.Issue(context.Background(), session.Claims{"email": "u1@test.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := map[string]string{
		"garbage":   "not-a-token",
		"expired":   expired,
		"foreign":   foreign,
		"truncated": good.Value[:len(good.Value)-4],
	}
	for name, value := range cases {
		w := srv.do(http.MethodGet, "/myRequest/u1@test.com", "", &http.Cookie{Name: "token", Value: value})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, w.Code)
		}
	}
}

func TestGuard_LogoutRevokesSession(t *testing.T) {
	srv := newTestServer(t, "development")
	u1 := srv.login(t, "u1@test.com")

	w := srv.do(http.MethodGet, "/logout", "", u1)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	// A browser drops the cookie; a replayed copy is refused too.
	if w := srv.do(http.MethodGet, "/needVolunteer/u1@test.com", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("after logout without cookie: expected 401, got %d", w.Code)
	}
	if w := srv.do(http.MethodGet, "/needVolunteer/u1@test.com", "", u1); w.Code != http.StatusUnauthorized {
		t.Errorf("after logout with replayed cookie: expected 401, got %d", w.Code)
	}
	if len(srv.revoked.revoked) != 1 {
		t.Errorf("expected one revoked token, got %d", len(srv.revoked.revoked))
	}
}

func TestGuard_AttachesSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	domainSessions, err := session.NewService(testSecret, session.DefaultTTL)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	sessions := appsession.NewService(domainSessions)
	token, _, err := sessions.Login(context.Background(), session.Claims{"email": "u1@test.com", "name": "U One"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	guard := httptransport.NewGuard(sessions, httptransport.CookiePolicy{Name: "token"}, nil)

	var fromGin, fromCtx *session.Session
	router := gin.New()
	router.GET("/me", guard.RequireSession(), func(c *gin.Context) {
		fromGin, _ = httptransport.CurrentSession(c)
		fromCtx, _ = session.FromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if fromGin == nil || fromGin.Email != "u1@test.com" || fromGin.Claims["name"] != "U One" {
		t.Errorf("unexpected session on gin context: %+v", fromGin)
	}
	if fromCtx != fromGin {
		t.Errorf("expected the same session on the request context")
	}
}

func TestGuard_RecordsDecisions(t *testing.T) {
	srv := newTestServer(t, "development")
	u1 := srv.login(t, "u1@test.com")

	srv.do(http.MethodGet, "/needVolunteer/u1@test.com", "", u1)
	srv.do(http.MethodGet, "/needVolunteer/u2@test.com", "", u1)
	srv.do(http.MethodGet, "/needVolunteer/u1@test.com", "")

	body := srv.do(http.MethodGet, "/metrics", "").Body.String()
	for _, want := range []string{
		`volunteer_auth_decisions_total{outcome="allowed"} 1`,
		`volunteer_auth_decisions_total{outcome="authenticated"} 2`,
		`volunteer_auth_decisions_total{outcome="forbidden"} 1`,
		`volunteer_auth_decisions_total{outcome="unauthenticated"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics to contain %q", want)
		}
	}
}

func TestGuard_OwnedResourceScenario(t *testing.T) {
	gin.SetMode(gin.TestMode)

	domainSessions, err := session.NewService(testSecret, session.DefaultTTL)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	sessions := appsession.NewService(domainSessions)
	cookies := httptransport.CookiePolicy{Name: "token", SameSite: http.SameSiteStrictMode}
	guard := httptransport.NewGuard(sessions, cookies, nil)

	var invoked int
	var identity string
	router := gin.New()
	router.POST("/jwt", httptransport.NewSessionHandler(sessions, cookies).Login)
	router.GET("/resource/:email", guard.Owned("email", func(c *gin.Context) {
		invoked++
		if sess, ok := session.FromContext(c.Request.Context()); ok {
			identity = sess.Email
		}
		c.Status(http.StatusOK)
	})...)

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"u1@test.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var token *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			token = c
		}
	}
	if token == nil || !token.HttpOnly {
		t.Fatalf("expected HttpOnly token cookie, got %+v", token)
	}

	call := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := call("/resource/u1@test.com"); code != http.StatusOK {
		t.Fatalf("own resource: expected 200, got %d", code)
	}
	if invoked != 1 || identity != "u1@test.com" {
		t.Errorf("expected handler invoked once with identity u1@test.com, got %d %q", invoked, identity)
	}

	if code := call("/resource/u2@test.com"); code != http.StatusForbidden {
		t.Errorf("other resource: expected 403, got %d", code)
	}
	if invoked != 1 {
		t.Errorf("handler must not run on a forbidden request, ran %d times", invoked)
	}
}
