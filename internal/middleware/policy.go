package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
)

const (
	SignInPath    = "/auth/signin"
	SignUpPath    = "/auth/signup"
	AfterAuthPath = "/dashboard"
)

// ProtectedPrefixes need an active session.
var ProtectedPrefixes = []string{
	"/dashboard",
	"/profile",
	"/browse",
	"/swap-request",
	"/my-swaps",
	"/admin",
	"/users",
	"/realtime",
}

// AuthPages send members who are already signed in to the dashboard.
var AuthPages = []string{SignInPath, SignUpPath}

// AccessPolicy gates protected paths on the session resolved by SessionMiddleware.
// Browsers are redirected; API clients get a JSON 401.
func AccessPolicy() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		_, signedIn := CurrentIdentity(c)

		if !signedIn && matchesAny(path, ProtectedPrefixes) {
			if WantsJSON(c) {
				responses.Unauthorized(c, "Sign in to continue")
				return
			}
			c.Redirect(http.StatusFound, SignInPath)
			c.Abort()
			return
		}

		if signedIn && c.Request.Method == http.MethodGet && matchesAny(path, AuthPages) {
			c.Redirect(http.StatusFound, AfterAuthPath)
			c.Abort()
			return
		}

		c.Next()
	}
}

// WantsJSON tells API and websocket clients apart from page navigations.
func WantsJSON(c *gin.Context) bool {
	if c.GetHeader("Authorization") != "" || c.GetHeader("Upgrade") != "" {
		return true
	}
	accept := c.GetHeader("Accept")
	if strings.Contains(accept, "text/html") {
		return false
	}
	return strings.Contains(accept, "application/json") || c.ContentType() == "application/json"
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
