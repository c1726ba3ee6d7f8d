package session

import (
	"net"
	"net/http"
)

const (
	// CookieName is the only persisted artifact the route gate can see.
	CookieName = "accessToken"

	// cookieMaxAge matches the upstream token lifetime (one hour).
	cookieMaxAge = 60 * 60
)

// SetCookie mirrors the access token into the gate-visible cookie.
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Value:  token,
		Path:   "/",
		MaxAge: cookieMaxAge,
	})
}

// ClearCookie expires the cookie under the bare path and, when a hostname
// is known, under that hostname explicitly. Clearing both keeps a stale
// cookie from surviving a domain change.
func ClearCookie(w http.ResponseWriter, hostname string) {
	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if hostname == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Value:  "",
		Path:   "/",
		Domain: hostname,
		MaxAge: -1,
	})
}

// TokenFromRequest reads the cookie token off an incoming request.
// Returns "" when the cookie is absent.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

// Hostname strips any port from a request Host header, for ClearCookie.
func Hostname(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
