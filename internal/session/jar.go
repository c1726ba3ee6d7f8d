package session

import "net/http"

// Jar is the cookie-side replica of the access token. The store reads it
// as a fallback, repairs it from durable storage when missing, and never
// treats it as authoritative. One Jar per incoming request.
type Jar interface {
	// Token returns the cookie token, or "" when the cookie is absent.
	Token() string
	// Set writes the token cookie with the fixed lifetime.
	Set(token string)
	// Clear expires the cookie under every hostname variant.
	Clear()
}

// NopJar is a Jar with no cookie behind it, for boot-time restores that
// run outside any HTTP request.
type NopJar struct{}

func (NopJar) Token() string { return "" }
func (NopJar) Set(string)    {}
func (NopJar) Clear()        {}

type requestJar struct {
	w http.ResponseWriter
	r *http.Request

	// Set-Cookie written during this request shadows the request header.
	pending *string
}

// NewRequestJar binds a Jar to one request/response pair.
func NewRequestJar(w http.ResponseWriter, r *http.Request) Jar {
	return &requestJar{w: w, r: r}
}

func (j *requestJar) Token() string {
	if j.pending != nil {
		return *j.pending
	}
	return TokenFromRequest(j.r)
}

func (j *requestJar) Set(token string) {
	SetCookie(j.w, token)
	j.pending = &token
}

func (j *requestJar) Clear() {
	ClearCookie(j.w, Hostname(j.r))
	empty := ""
	j.pending = &empty
}
