package httpserver

import "net/http"

const loginPath = "/login"

type scope int

const (
	scopeSite scope = iota
	scopeAPI
	scopeBare
)

// Route describes one registered endpoint.
type Route struct {
	Method  string
	Pattern string
	Name    string
	// Sitemap marks GET pages listed in sitemap.xml. Patterns with a
	// {slug} parameter are expanded from their data source.
	Sitemap bool
	Private bool

	scope   scope
	handler http.HandlerFunc
}

// Routes lists every endpoint served by the site, in registration order.
func Routes() []Route {
	var s *Server
	return s.table()
}

// table is the single source for the router, the routes command and the
// sitemap. A nil receiver yields descriptors without handlers.
func (s *Server) table() []Route {
	get, post := http.MethodGet, http.MethodPost
	routes := []Route{
		{Method: get, Pattern: "/healthz", Name: "healthz", scope: scopeBare},
		{Method: get, Pattern: "/robots.txt", Name: "robots", scope: scopeBare},
		{Method: get, Pattern: "/sitemap.xml", Name: "sitemap", scope: scopeBare},
		{Method: get, Pattern: "/api/navigation", Name: "api.navigation", scope: scopeAPI},

		{Method: get, Pattern: "/", Name: "home", Sitemap: true},
		{Method: get, Pattern: "/about", Name: "about", Sitemap: true},
		{Method: get, Pattern: "/about/team", Name: "team", Sitemap: true},
		{Method: get, Pattern: "/about/partners", Name: "partners", Sitemap: true},
		{Method: get, Pattern: "/programs", Name: "programs", Sitemap: true},
		{Method: get, Pattern: "/programs/{slug}", Name: "program", Sitemap: true},
		{Method: get, Pattern: "/community", Name: "community", Sitemap: true},
		{Method: get, Pattern: "/community/startups", Name: "startups", Sitemap: true},
		{Method: get, Pattern: "/community/mentors", Name: "mentors", Sitemap: true},
		{Method: get, Pattern: "/events", Name: "events", Sitemap: true},
		{Method: get, Pattern: "/events/sef", Name: "events.sef", Sitemap: true},
		{Method: get, Pattern: "/events/{slug}", Name: "event", Sitemap: true},
		{Method: get, Pattern: "/resources", Name: "resources", Sitemap: true},
		{Method: get, Pattern: "/resources/{slug}", Name: "resource", Sitemap: true},
		{Method: get, Pattern: "/careers", Name: "careers", Sitemap: true},
		{Method: get, Pattern: "/careers/{slug}", Name: "job", Sitemap: true},
		{Method: get, Pattern: "/contact", Name: "contact", Sitemap: true},
		{Method: post, Pattern: "/contact", Name: "contact.submit"},
		{Method: get, Pattern: "/apply", Name: "apply", Sitemap: true},
		{Method: get, Pattern: "/apply/{program}", Name: "apply.program"},
		{Method: post, Pattern: "/apply", Name: "apply.submit"},
		{Method: post, Pattern: "/newsletter", Name: "newsletter.submit"},
		{Method: get, Pattern: "/privacy", Name: "privacy", Sitemap: true},
		{Method: get, Pattern: "/terms", Name: "terms", Sitemap: true},
		{Method: get, Pattern: loginPath, Name: "login"},
		{Method: post, Pattern: "/auth/session", Name: "auth.session"},
		{Method: post, Pattern: "/auth/logout", Name: "auth.logout"},
		{Method: get, Pattern: "/portal", Name: "portal", Private: true},
		{Method: post, Pattern: "/ui/nav", Name: "ui.nav"},
		{Method: post, Pattern: "/ui/theme", Name: "ui.theme"},
	}
	if s == nil {
		return routes
	}
	handlers := map[string]http.HandlerFunc{
		"healthz":           s.healthz,
		"robots":            s.robots,
		"sitemap":           s.sitemap,
		"api.navigation":    s.apiNavigation,
		"home":              s.home,
		"about":             s.contentPage("about"),
		"team":              s.team,
		"partners":          s.partners,
		"programs":          s.programs,
		"program":           s.program,
		"community":         s.community,
		"startups":          s.startups,
		"mentors":           s.mentors,
		"events":            s.events,
		"events.sef":        s.eventBySlug("sef"),
		"event":             s.event,
		"resources":         s.resources,
		"resource":          s.resource,
		"careers":           s.jobs,
		"job":               s.job,
		"contact":           s.contact,
		"contact.submit":    s.contactSubmit,
		"apply":             s.apply,
		"apply.program":     s.applyProgram,
		"apply.submit":      s.applySubmit,
		"newsletter.submit": s.newsletterSubmit,
		"privacy":           s.contentPage("privacy"),
		"terms":             s.contentPage("terms"),
		"login":             s.login,
		"auth.session":      s.authSession,
		"auth.logout":       s.authLogout,
		"portal":            s.portal,
		"ui.nav":            s.navEvent,
		"ui.theme":          s.themeToggle,
	}
	for i := range routes {
		routes[i].handler = handlers[routes[i].Name]
	}
	return routes
}
