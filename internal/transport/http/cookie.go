package http

import (
	"net/http"

	"github.com/astro-web3/volunteer-management/internal/config"
	"github.com/gin-gonic/gin"
)

const (
	defaultCookieName = "token"
	cookiePath        = "/"
)

// CookiePolicy holds the attributes shared by issuing and clearing the session cookie.
// Browsers only delete a cookie when the clearing Set-Cookie matches them.
type CookiePolicy struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

// NewCookiePolicy returns cross-site HTTPS cookies in production and same-site cookies elsewhere.
func NewCookiePolicy(cfg *config.Config) CookiePolicy {
	name := cfg.Auth.CookieName
	if name == "" {
		name = defaultCookieName
	}

	if cfg.IsProduction() {
		return CookiePolicy{Name: name, Secure: true, SameSite: http.SameSiteNoneMode}
	}
	return CookiePolicy{Name: name, Secure: false, SameSite: http.SameSiteStrictMode}
}

// Set stores token as an HttpOnly browser-session cookie.
func (p CookiePolicy) Set(c *gin.Context, token string) {
	c.SetSameSite(p.SameSite)
	c.SetCookie(p.Name, token, 0, cookiePath, "", p.Secure, true)
}

// Clear overwrites the cookie with an empty value that expires immediately.
func (p CookiePolicy) Clear(c *gin.Context) {
	c.SetSameSite(p.SameSite)
	c.SetCookie(p.Name, "", -1, cookiePath, "", p.Secure, true)
}

// Read returns the raw credential, or "" when the cookie is absent.
func (p CookiePolicy) Read(c *gin.Context) string {
	token, err := c.Cookie(p.Name)
	if err != nil {
		return ""
	}
	return token
}
