package middleware

import (
	"net/http"
	"net/url"
)

// RequireUser lets signed-in visitors through. Others are sent to loginPath,
// with HX-Redirect for htmx requests.
func RequireUser(loginPath string) func(http.Handler) http.Handler {
	if loginPath == "" {
		loginPath = "/login"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if ok && sess.User() != nil {
				next.ServeHTTP(w, r)
				return
			}

			target := loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			if IsHTMXRequest(r.Context()) {
				w.Header().Set("HX-Redirect", target)
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}

// NoStore disables caching of personalised responses.
func NoStore() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}
