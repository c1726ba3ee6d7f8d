package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/giriraj47/helpstudyabroad/internal/session"
)

// RouteGate is a stateless interceptor that runs before any page logic.
// It reads only the request cookie: durable storage is not visible at
// this layer, and the token value is never validated here. An expired
// but present token passes; validity is enforced lazily by the session
// store and by the upstream rejecting it on first use.
type RouteGate struct {
	LoginPath string
	HomePath  string

	// PassthroughPrefixes are API paths the gate always lets through.
	PassthroughPrefixes []string
}

func NewRouteGate() *RouteGate {
	return &RouteGate{
		LoginPath:           "/login",
		HomePath:            "/",
		PassthroughPrefixes: []string{"/api/"},
	}
}

// Intercept applies the gate rule table, in order:
//  1. Login path or API passthrough: allow. A cookie-holding request to
//     the login path itself is bounced home instead.
//  2. No cookie token: redirect to the login path.
//  3. Otherwise: pass through.
//
// Static assets skip the gate entirely.
func (g *RouteGate) Intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isStaticAsset(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token := session.TokenFromRequest(r)

		if r.URL.Path == g.LoginPath || g.isPassthrough(r.URL.Path) {
			if token != "" && r.URL.Path == g.LoginPath {
				http.Redirect(w, r, g.HomePath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if token == "" {
			http.Redirect(w, r, g.LoginPath, http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *RouteGate) isPassthrough(p string) bool {
	for _, prefix := range g.PassthroughPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func isStaticAsset(p string) bool {
	if p == "/favicon.ico" {
		return true
	}
	switch path.Ext(p) {
	case ".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".css", ".js", ".ico":
		return true
	}
	return false
}
