// Package guard redirects page requests based on session cookie presence.
package guard

import "net/http"

const (
	SignInPath = "/auth/signin"
	SignUpPath = "/auth/signup"
	HomePath   = "/dashboard"
)

func IsPublic(path string) bool {
	return path == "/" || path == SignInPath || path == SignUpPath
}

// Redirect returns where a request for path should go, or "" to let it
// through. Signed-out users are sent to sign in; signed-in users are kept
// away from the public pages.
func Redirect(path string, hasSession bool) string {
	public := IsPublic(path)
	switch {
	case !public && !hasSession:
		return SignInPath
	case public && hasSession:
		return HomePath
	}
	return ""
}

// Middleware applies Redirect using the named cookie.
func Middleware(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ck, err := r.Cookie(cookieName)
			has := err == nil && ck.Value != ""
			if to := Redirect(r.URL.Path, has); to != "" {
				http.Redirect(w, r, to, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
