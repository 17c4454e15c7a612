package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"sheraa.ae/site/internal/appctx"
	custommw "sheraa.ae/site/internal/httpserver/middleware"
	"sheraa.ae/site/internal/nav"
	"sheraa.ae/site/internal/navstate"
	"sheraa.ae/site/internal/platform/requestctx"
	"sheraa.ae/site/internal/views"
)

// navEvent applies one header event to the visitor's chrome and returns the
// re-rendered header. The scroll-lock state travels as an HX-Trigger event
// so the client can toggle body scrolling.
func (s *Server) navEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess, ok := custommw.SessionFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	path := r.PostFormValue("path")
	if path == "" {
		path = currentPath(custommw.HTMXInfoFromContext(ctx).CurrentURL)
	}
	path = nav.NormalizePath(path)

	ev := navstate.Event{
		Kind:  navstate.EventKind(strings.TrimSpace(r.PostFormValue("event"))),
		Group: strings.TrimSpace(r.PostFormValue("group")),
		Path:  path,
	}
	if raw := strings.TrimSpace(r.PostFormValue("y")); raw != "" {
		y, err := strconv.Atoi(strings.Split(raw, ".")[0])
		if err != nil {
			http.Error(w, "invalid scroll offset", http.StatusBadRequest)
			return
		}
		ev.Offset = y
	}

	chrome := s.chrome(sess)
	if err := chrome.Apply(ev); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, navstate.ErrLockHeld) {
			status = http.StatusConflict
		}
		requestctx.Logger(ctx).Debug("navigation event rejected", zap.String("event", string(ev.Kind)), zap.Error(err))
		http.Error(w, err.Error(), status)
		return
	}
	sess.SetNav(chrome.Snapshot())

	st := *appctx.From(ctx)
	st.Path = path
	st.Nav = chrome.View()
	w.Header().Set("Cache-Control", "no-store")
	trigger(w, "nav:scroll-lock", map[string]bool{"locked": st.Nav.Locked})
	views.Render(w, r, http.StatusOK, views.Header(&st, s.menu.Build(path)))
}

// themeToggle stores the chosen colour scheme.
func (s *Server) themeToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st := appctx.From(ctx)
	theme := st.Theme.Next()
	if v := r.PostFormValue("theme"); v != "" {
		theme = appctx.ParseTheme(v)
	}
	if sess, ok := custommw.SessionFromContext(ctx); ok {
		sess.SetTheme(string(theme))
	}
	if custommw.IsHTMXRequest(ctx) {
		trigger(w, "theme:changed", map[string]string{"theme": string(theme)})
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, localReferer(r), http.StatusSeeOther)
}

// currentPath extracts the path from an absolute HX-Current-URL.
func currentPath(raw string) string {
	if raw == "" {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "/"
	}
	return u.Path
}

// localReferer returns the referring path when it belongs to this host.
func localReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

// safeNext accepts only same-site absolute paths as post-login targets.
func safeNext(next, fallback string) string {
	next = strings.TrimSpace(next)
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
