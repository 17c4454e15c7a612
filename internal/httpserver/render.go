package httpserver

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"sheraa.ae/site/internal/appctx"
	custommw "sheraa.ae/site/internal/httpserver/middleware"
	"sheraa.ae/site/internal/nav"
	"sheraa.ae/site/internal/navstate"
	"sheraa.ae/site/internal/platform/requestctx"
	"sheraa.ae/site/internal/seo"
	"sheraa.ae/site/internal/session"
	"sheraa.ae/site/internal/views"
)

// appState restores the navigation chrome from the session, closes overlays
// on page loads and publishes the request state for the views.
func (s *Server) appState(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess, _ := custommw.SessionFromContext(ctx)
		path := nav.NormalizePath(r.URL.Path)

		htmx := custommw.IsHTMXRequest(ctx)
		chrome := s.chrome(sess)
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			wasLocked := chrome.Lock.Held()
			if htmx {
				chrome.Navigate(path)
			} else {
				// A full document load starts without overlays.
				chrome.Mount()
			}
			if sess != nil {
				sess.SetNav(chrome.Snapshot())
			}
			// Swapped pages keep the old <body>, so the client lock
			// only changes through the event.
			if locked := chrome.Lock.Held(); htmx && locked != wasLocked {
				trigger(w, "nav:scroll-lock", map[string]bool{"locked": locked})
			}
		}

		lang := custommw.LocaleFromContext(ctx)
		if lang == "" {
			lang = s.bundle.Fallback()
		}
		st := &appctx.State{
			Theme:     appctx.ThemeSystem,
			Lang:      lang,
			Path:      path,
			CSRFToken: custommw.CSRFTokenFromContext(ctx),
			HTMX:      htmx,
			RequestID: chimw.GetReqID(ctx),
			Nav:       chrome.View(),
			Analytics: s.analytics,
			Bundle:    s.bundle,
		}
		if sess != nil {
			st.User = sess.User()
			st.Theme = appctx.ParseTheme(sess.Theme())
		}
		next.ServeHTTP(w, r.WithContext(appctx.With(ctx, st)))
	})
}

func (s *Server) chrome(sess *session.Session) *navstate.Chrome {
	c := navstate.NewChrome(s.navCfg, s.menu, navstate.WithClock(s.now))
	if sess != nil {
		c.Restore(sess.Nav())
	}
	return c
}

// meta builds the page metadata for the current path.
func (s *Server) meta(st *appctx.State, title, description string) seo.Meta {
	return s.site.Page(st.Path, title, description, st.Lang, s.bundle.Supported())
}

// render writes a full document around p.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, p views.Page) {
	s.renderWith(w, r, status, p, views.FormState{})
}

func (s *Server) renderWith(w http.ResponseWriter, r *http.Request, status int, p views.Page, newsletter views.FormState) {
	st := appctx.From(r.Context())
	ch := views.Chrome{
		Items:      s.menu.Build(st.Path),
		Footer:     s.menu.Footer,
		Newsletter: newsletter,
	}
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		ch.Toasts = sess.PopToasts()
	}
	if p.Crumbs == nil {
		p.Crumbs = s.menu.Breadcrumbs(st.Path)
	}
	if p.Meta.Title == "" {
		p.Meta = s.meta(st, "", "")
	}
	if len(p.Crumbs) > 1 {
		items := make([]seo.BreadcrumbItem, 0, len(p.Crumbs))
		for _, c := range p.Crumbs {
			name := c.Label
			if c.LabelKey != "" {
				name = st.T(c.LabelKey)
			}
			items = append(items, seo.BreadcrumbItem{Name: name, Item: s.site.Absolute(c.Href)})
		}
		p.Meta = p.Meta.With(seo.BreadcrumbList(items))
	}
	views.Render(w, r, status, views.Document(st, ch, p))
}

// relabel replaces the last crumb with a data-driven label such as a
// program name.
func relabel(crumbs []nav.Crumb, href, label string) []nav.Crumb {
	out := append([]nav.Crumb(nil), crumbs...)
	if n := len(out); n > 0 && out[n-1].Href == href {
		out[n-1].LabelKey = ""
		out[n-1].Label = label
		return out
	}
	for i := range out {
		out[i].Active = false
	}
	return append(out, nav.Crumb{Href: href, Label: label, Active: true})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	meta := s.meta(st, st.T("error.not_found.title"), "")
	meta.NoIndex = true
	s.render(w, r, http.StatusNotFound, views.Page{Meta: meta, Body: views.NotFound(st)})
}

// fail logs err and renders the generic error page.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestctx.Logger(r.Context()).Error("request failed", zap.Error(err))
	st := appctx.From(r.Context())
	meta := s.meta(st, st.T("error.generic.title"), "")
	meta.NoIndex = true
	s.render(w, r, http.StatusInternalServerError, views.Page{Meta: meta, Body: views.ErrorPage(st)})
}

func (s *Server) logFailure(r *http.Request, msg string, err error) {
	requestctx.Logger(r.Context()).Warn(msg, zap.Error(err))
}

// panicPage renders the error page without touching session state, which
// may be the thing that failed.
func (s *Server) panicPage(w http.ResponseWriter, r *http.Request) {
	st := &appctx.State{
		Theme:  appctx.ThemeSystem,
		Lang:   s.bundle.Fallback(),
		Path:   nav.NormalizePath(r.URL.Path),
		Bundle: s.bundle,
	}
	meta := s.meta(st, st.T("error.generic.title"), "")
	meta.NoIndex = true
	ch := views.Chrome{Items: s.menu.Build(st.Path), Footer: s.menu.Footer}
	views.Render(w, r, http.StatusInternalServerError, views.Document(st, ch, views.Page{Meta: meta, Body: views.ErrorPage(st)}))
}

func (s *Server) csrfFailed(w http.ResponseWriter, r *http.Request) {
	lang := custommw.LocaleFromContext(r.Context())
	if lang == "" {
		lang = s.bundle.Fallback()
	}
	if custommw.IsHTMXRequest(r.Context()) {
		trigger(w, "toast", toastPayload("error", s.bundle.T(lang, "toast.csrf")))
	}
	http.Error(w, s.bundle.T(lang, "toast.csrf"), http.StatusForbidden)
}

// trigger merges an event into the HX-Trigger response header.
func trigger(w http.ResponseWriter, event string, detail any) {
	events := map[string]any{}
	if raw := w.Header().Get("HX-Trigger"); raw != "" {
		_ = json.Unmarshal([]byte(raw), &events)
	}
	events[event] = detail
	b, err := json.Marshal(events)
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(b))
}

func toastPayload(kind, message string) map[string]string {
	return map[string]string{"kind": kind, "message": message}
}

// toast notifies the visitor. htmx fragment requests receive an HX-Trigger
// event; page loads get a flash that the next render pops.
func (s *Server) toast(w http.ResponseWriter, r *http.Request, kind, key string) {
	if custommw.IsFragmentRequest(r.Context()) {
		st := appctx.From(r.Context())
		trigger(w, "toast", toastPayload(kind, st.T(key)))
		return
	}
	if sess, ok := custommw.SessionFromContext(r.Context()); ok {
		sess.AddToast(kind, key)
	}
}

// redirect sends the visitor to target, using HX-Redirect for htmx requests.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if custommw.IsHTMXRequest(r.Context()) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
