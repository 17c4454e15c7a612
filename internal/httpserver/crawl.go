package httpserver

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"sheraa.ae/site/internal/cms"
	"sheraa.ae/site/internal/nav"
	"sheraa.ae/site/internal/platform/httpx"
	"sheraa.ae/site/internal/platform/requestctx"
	"sheraa.ae/site/internal/seo"
)

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, s.site.Robots(portalPath, "/api/", "/ui/", "/auth/"))
}

func (s *Server) sitemap(w http.ResponseWriter, r *http.Request) {
	urls := s.site.Sitemap(s.sitemapEntries(r))
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if err := seo.WriteSitemap(w, urls); err != nil {
		requestctx.Logger(r.Context()).Error("write sitemap", zap.Error(err))
	}
}

// sitemapEntries expands the route table into concrete paths.
func (s *Server) sitemapEntries(r *http.Request) []seo.Entry {
	ctx := r.Context()
	lang := s.bundle.Fallback()
	var entries []seo.Entry
	for _, rt := range s.table() {
		if !rt.Sitemap || rt.Method != http.MethodGet {
			continue
		}
		prefix, param := strings.CutSuffix(rt.Pattern, "/{slug}")
		if !param {
			entries = append(entries, seo.Entry{Path: rt.Pattern})
			continue
		}
		switch rt.Name {
		case "program":
			for _, slug := range s.catalog.ProgramSlugs() {
				entries = append(entries, seo.Entry{Path: prefix + "/" + slug})
			}
		case "event":
			for _, e := range s.catalog.AllEvents() {
				entries = append(entries, seo.Entry{Path: prefix + "/" + e.Slug})
			}
		case "resource":
			pages, err := s.content.List(ctx, cms.KindResources, lang)
			if err != nil {
				s.logFailure(r, "sitemap resources unavailable", err)
				continue
			}
			for _, p := range pages {
				modified := p.UpdatedAt
				if modified.IsZero() {
					modified = p.PublishedAt
				}
				entries = append(entries, seo.Entry{Path: prefix + "/" + p.Slug, Modified: modified})
			}
		case "job":
			for _, j := range s.careers.Jobs(ctx) {
				entries = append(entries, seo.Entry{Path: prefix + "/" + j.Slug, Modified: j.Posted})
			}
		}
	}
	return entries
}

type apiNavItem struct {
	ID       string       `json:"id"`
	Href     string       `json:"href"`
	Label    string       `json:"label"`
	Icon     string       `json:"icon,omitempty"`
	Special  bool         `json:"special,omitempty"`
	Active   bool         `json:"active"`
	Current  bool         `json:"current"`
	SubItems []apiNavLink `json:"items,omitempty"`
}

type apiNavLink struct {
	Href        string `json:"href"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

type apiNavCrumb struct {
	Href   string `json:"href"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

type apiNavigation struct {
	Path        string        `json:"path"`
	Lang        string        `json:"lang"`
	Items       []apiNavItem  `json:"items"`
	Breadcrumbs []apiNavCrumb `json:"breadcrumbs"`
}

// apiNavigation exposes the resolved menu for a path so other frontends can
// share the same navigation definition.
func (s *Server) apiNavigation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := nav.NormalizePath(q.Get("path"))
	lang := s.bundle.Fallback()
	if raw := q.Get("hl"); raw != "" {
		normalized, ok := s.bundle.Normalize(raw)
		if !ok {
			httpx.WriteError(r.Context(), w, httpx.NewError("invalid_locale", "unsupported locale", http.StatusBadRequest).Field("hl", "unsupported"))
			return
		}
		lang = normalized
	}

	out := apiNavigation{Path: path, Lang: lang}
	for _, it := range s.menu.Build(path) {
		item := apiNavItem{
			ID:      it.ID,
			Href:    it.Href,
			Label:   s.bundle.T(lang, it.LabelKey),
			Icon:    it.Icon,
			Special: it.Special,
			Active:  it.Active,
			Current: it.Current,
		}
		for _, sub := range it.SubItems {
			link := apiNavLink{Href: sub.Href, Label: s.bundle.T(lang, sub.LabelKey), Active: sub.Active}
			if sub.DescriptionKey != "" {
				link.Description = s.bundle.T(lang, sub.DescriptionKey)
			}
			item.SubItems = append(item.SubItems, link)
		}
		out.Items = append(out.Items, item)
	}
	for _, c := range s.menu.Breadcrumbs(path) {
		label := c.Label
		if c.LabelKey != "" {
			label = s.bundle.T(lang, c.LabelKey)
		}
		out.Breadcrumbs = append(out.Breadcrumbs, apiNavCrumb{Href: c.Href, Label: label, Active: c.Active})
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	httpx.WriteJSON(w, http.StatusOK, out)
}
