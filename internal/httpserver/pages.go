package httpserver

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	g "maragu.dev/gomponents"

	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/careers"
	"sheraa.ae/site/internal/catalog"
	"sheraa.ae/site/internal/cms"
	"sheraa.ae/site/internal/seo"
	"sheraa.ae/site/internal/views"
)

const (
	homeStartups = 6
	homeEvents   = 3
)

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	upcoming, _ := s.catalog.Events(s.now())
	startups := s.catalog.Startups("")
	data := views.HomeData{
		Programs:     s.catalog.Programs(),
		Startups:     startups[:min(len(startups), homeStartups)],
		Testimonials: s.catalog.Testimonials(),
		Events:       upcoming[:min(len(upcoming), homeEvents)],
		Partners:     s.catalog.Partners(),
	}
	meta := s.meta(st, "", st.T("home.lead")).With(
		seo.Organization(s.site.Name, s.site.Absolute("/"), s.site.LogoURL),
		seo.WebSite(s.site.Name, s.site.Absolute("/"), st.Lang),
	)
	s.render(w, r, http.StatusOK, views.Page{Meta: meta, Body: views.Home(st, data)})
}

// contentPage serves a CMS page under the pages kind.
func (s *Server) contentPage(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := appctx.From(r.Context())
		page, err := s.content.Page(r.Context(), cms.KindPages, slug, st.Lang)
		if err != nil {
			s.contentError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, views.Page{Meta: s.pageMeta(st, page), Body: views.ContentPage(st, page)})
	}
}

func (s *Server) pageMeta(st *appctx.State, p cms.Page) seo.Meta {
	title, desc := p.Title, p.Summary
	if p.SEO.Title != "" {
		title = p.SEO.Title
	}
	if p.SEO.Description != "" {
		desc = p.SEO.Description
	}
	meta := s.meta(st, title, desc)
	if p.SEO.OGImage != "" {
		meta.OG.Image = s.site.Absolute(p.SEO.OGImage)
		meta.Twitter.Image = meta.OG.Image
	}
	return meta
}

func (s *Server) contentError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, cms.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	s.fail(w, r, err)
}

func (s *Server) team(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	s.render(w, r, http.StatusOK, views.Page{
		Meta: s.meta(st, st.T("team.title"), st.T("team.lead")),
		Body: views.Team(st, s.catalog.Team()),
	})
}

func (s *Server) partners(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	s.render(w, r, http.StatusOK, views.Page{
		Meta: s.meta(st, st.T("partners.title"), st.T("partners.lead")),
		Body: views.Partners(st, s.catalog.Partners()),
	})
}

func (s *Server) programs(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	s.render(w, r, http.StatusOK, views.Page{
		Meta: s.meta(st, st.T("programs.title"), st.T("programs.lead")),
		Body: views.Programs(st, s.catalog.Programs()),
	})
}

func (s *Server) program(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	p, err := s.catalog.Program(chi.URLParam(r, "slug"))
	if err != nil {
		s.notFound(w, r)
		return
	}
	var alumni []catalog.Startup
	for _, su := range s.catalog.Startups("") {
		if su.Program == p.Slug {
			alumni = append(alumni, su)
		}
	}
	name := p.Name.In(st.Lang)
	s.render(w, r, http.StatusOK, views.Page{
		Meta:   s.meta(st, name, p.Tagline.In(st.Lang)),
		Crumbs: relabel(s.menu.Breadcrumbs(st.Path), st.Path, name),
		Body:   views.ProgramDetail(st, p, alumni),
	})
}

func (s *Server) community(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	data := views.CommunityData{
		Startups: s.catalog.Startups(""),
		Mentors:  len(s.catalog.Mentors()),
		Sectors:  len(s.catalog.Sectors()),
		Headline: st.T("community.title"),
		Summary:  st.T("community.lead"),
	}
	page, err := s.content.Page(r.Context(), cms.KindPages, "community", st.Lang)
	switch {
	case err == nil:
		data.Headline, data.Summary = page.Title, page.Summary
		data.Intro = g.Raw(page.HTML)
	case !errors.Is(err, cms.ErrNotFound):
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, views.Page{
		Meta: s.meta(st, data.Headline, data.Summary),
		Body: views.Community(st, data),
	})
}

func (s *Server) startups(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	sector := strings.TrimSpace(r.URL.Query().Get("sector"))
	sectors := s.catalog.Sectors()
	if sector != "" && !slices.Contains(sectors, sector) {
		sector = ""
	}
	s.render(w, r, http.StatusOK, views.Page{
		Meta: s.meta(st, st.T("startups.title"), st.T("startups.lead")),
		Body: views.Startups(st, s.catalog.Startups(sector), sectors, sector),
	})
}

func (s *Server) mentors(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	s.render(w, r, http.StatusOK, views.Page{
		Meta: s.meta(st, st.T("mentors.title"), st.T("mentors.lead")),
		Body: views.Mentors(st, s.catalog.Mentors()),
	})
}

func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	upcoming, past := s.catalog.Events(s.now())
	ld := make([]map[string]any, 0, len(upcoming))
	for _, e := range upcoming {
		ld = append(ld, s.eventLD(st, e))
	}
	s.render(w, r, http.StatusOK, views.Page{
		Meta: s.meta(st, st.T("events.title"), st.T("events.lead")).With(ld...),
		Body: views.Events(st, upcoming, past),
	})
}

func (s *Server) event(w http.ResponseWriter, r *http.Request) {
	s.eventBySlug(chi.URLParam(r, "slug"))(w, r)
}

func (s *Server) eventBySlug(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := appctx.From(r.Context())
		e, err := s.catalog.Event(slug)
		if err != nil {
			s.notFound(w, r)
			return
		}
		title := e.Title.In(st.Lang)
		s.render(w, r, http.StatusOK, views.Page{
			Meta:   s.meta(st, title, e.Summary.In(st.Lang)).With(s.eventLD(st, e)),
			Crumbs: relabel(s.menu.Breadcrumbs(st.Path), st.Path, title),
			Body:   views.EventDetail(st, e),
		})
	}
}

func (s *Server) eventLD(st *appctx.State, e catalog.Event) map[string]any {
	return seo.Event(seo.EventInfo{
		Name:        e.Title.In(st.Lang),
		Description: e.Summary.In(st.Lang),
		URL:         s.site.Absolute("/events/" + e.Slug),
		Location:    e.Location.In(st.Lang),
		Starts:      e.Starts,
		Ends:        e.Ends,
		Organizer:   s.site.Name,
	})
}

func (s *Server) resources(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	data := views.ResourcesData{Category: category}
	pages, err := s.content.List(r.Context(), cms.KindResources, st.Lang)
	if err != nil {
		s.logFailure(r, "resource list unavailable", err)
		data.Err = err
	}
	for _, p := range pages {
		if category == "" || strings.EqualFold(p.Category, category) {
			data.Pages = append(data.Pages, p)
		}
	}
	s.render(w, r, http.StatusOK, views.Page{
		Meta: s.meta(st, st.T("resources.title"), st.T("resources.lead")),
		Body: views.Resources(st, data),
	})
}

func (s *Server) resource(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	page, err := s.content.Page(r.Context(), cms.KindResources, chi.URLParam(r, "slug"), st.Lang)
	if err != nil {
		s.contentError(w, r, err)
		return
	}
	meta := s.pageMeta(st, page)
	meta.OG.Type = "article"
	meta = meta.With(seo.Article(page.Title, meta.Canonical, meta.OG.Image, page.Author, page.PublishedAt))
	s.render(w, r, http.StatusOK, views.Page{
		Meta:   meta,
		Crumbs: relabel(s.menu.Breadcrumbs(st.Path), st.Path, page.Title),
		Body:   views.ResourceDetail(st, page),
	})
}

func (s *Server) jobs(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	s.render(w, r, http.StatusOK, views.Page{
		Meta: s.meta(st, st.T("careers.title"), st.T("careers.lead")),
		Body: views.Careers(st, s.careers.Jobs(r.Context())),
	})
}

func (s *Server) job(w http.ResponseWriter, r *http.Request) {
	st := appctx.From(r.Context())
	j, err := s.careers.Job(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, careers.ErrNotFound) || errors.Is(err, catalog.ErrNotFound) {
			s.notFound(w, r)
			return
		}
		s.fail(w, r, err)
		return
	}
	title := j.Title.In(st.Lang)
	ld := seo.JobPosting(seo.JobInfo{
		Title:          title,
		Description:    j.Description.In(st.Lang),
		Posted:         j.Posted,
		EmploymentType: j.Type,
		Location:       j.Location,
		Organization:   s.site.Name,
		OrgURL:         s.site.Absolute("/"),
	})
	s.render(w, r, http.StatusOK, views.Page{
		Meta:   s.meta(st, title, "").With(ld),
		Crumbs: relabel(s.menu.Breadcrumbs(st.Path), st.Path, title),
		Body:   views.JobDetail(st, j),
	})
}
