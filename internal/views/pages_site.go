package views

import (
	"strconv"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/catalog"
)

// HomeData feeds the landing page.
type HomeData struct {
	Programs     []catalog.Program
	Startups     []catalog.Startup
	Testimonials []catalog.Testimonial
	Events       []catalog.Event
	Partners     []catalog.Partner
}

// Home renders the landing page.
func Home(st *appctx.State, d HomeData) g.Node {
	return g.Group{
		hero(st.T("home.title"), st.T("home.lead"),
			btn("/apply", st.T("nav.apply")),
			ghostBtn("/programs", st.T("home.explore")),
		),
		section(st.T("home.programs"),
			h.Div(h.Class("grid"), g.Map(d.Programs, func(p catalog.Program) g.Node { return programCard(st, p) })),
		),
		g.If(len(d.Events) > 0, section(st.T("home.events"),
			h.Div(h.Class("grid"), g.Map(d.Events, func(e catalog.Event) g.Node { return eventCard(st, e) })),
		)),
		g.If(len(d.Testimonials) > 0, section(st.T("home.testimonials"),
			h.Div(h.Class("grid"), g.Map(d.Testimonials, func(t catalog.Testimonial) g.Node {
				return g.El("figure", h.Class("card testimonial"),
					g.El("blockquote", g.Text(t.Quote.In(st.Lang))),
					g.El("figcaption", h.Strong(g.Text(t.Author)), g.Text(" · "+t.Role.In(st.Lang)+", "+t.Company)),
				)
			})),
		)),
		section(st.T("home.startups"),
			h.Div(h.Class("grid"), g.Map(d.Startups, func(s catalog.Startup) g.Node { return startupCard(st, s) })),
			ghostBtn("/community/startups", st.T("home.all_startups")),
		),
		g.If(len(d.Partners) > 0, section(st.T("home.partners"), partnerGrid(d.Partners))),
	}
}

func programCard(st *appctx.State, p catalog.Program) g.Node {
	return card(
		h.Span(h.Class("icon"), g.Attr("data-icon", p.Icon)),
		h.H3(h.A(h.Href("/programs/"+p.Slug), g.Text(p.Name.In(st.Lang)))),
		h.P(g.Text(p.Tagline.In(st.Lang))),
		g.If(p.Open, h.Span(h.Class("badge"), g.Text(st.T("programs.open")))),
	)
}

func startupCard(st *appctx.State, s catalog.Startup) g.Node {
	return card(
		h.H3(g.Text(s.Name)),
		h.Span(h.Class("badge"), g.Text(st.T("sector."+s.Sector))),
		h.P(g.Text(s.Description.In(st.Lang))),
		g.If(s.Website != "", h.A(h.Href(s.Website), h.Rel("noopener"), h.Target("_blank"), g.Text(st.T("startups.visit")))),
	)
}

func eventCard(st *appctx.State, e catalog.Event) g.Node {
	return card(
		dateTime(st, e.Starts),
		h.H3(h.A(h.Href("/events/"+e.Slug), g.Text(e.Title.In(st.Lang)))),
		h.P(g.Text(e.Summary.In(st.Lang))),
		h.Small(g.Text(e.Location.In(st.Lang))),
	)
}

func partnerGrid(partners []catalog.Partner) g.Node {
	return h.Ul(h.Class("grid partners"), g.Map(partners, func(p catalog.Partner) g.Node {
		return h.Li(h.Class("card"),
			h.A(h.Href(p.URL), h.Rel("noopener"), h.Target("_blank"),
				g.Iff(p.Logo != "", func() g.Node { return h.Img(h.Src(p.Logo), h.Alt(p.Name), h.Loading("lazy")) }),
				h.Span(g.Text(p.Name)),
			),
		)
	}))
}

// Team renders the staff directory grouped by team.
func Team(st *appctx.State, members []catalog.TeamMember) g.Node {
	var order []string
	groups := map[string][]catalog.TeamMember{}
	for _, m := range members {
		if _, ok := groups[m.Group]; !ok {
			order = append(order, m.Group)
		}
		groups[m.Group] = append(groups[m.Group], m)
	}
	return g.Group{
		hero(st.T("team.title"), st.T("team.lead")),
		g.Map(order, func(group string) g.Node {
			return section(st.T("team.group."+group),
				h.Div(h.Class("grid"), g.Map(groups[group], func(m catalog.TeamMember) g.Node {
					return card(
						g.Iff(m.Photo != "", func() g.Node { return h.Img(h.Src(m.Photo), h.Alt(m.Name), h.Loading("lazy")) }),
						h.H3(g.Text(m.Name)),
						h.P(h.Class("role"), g.Text(m.Role.In(st.Lang))),
						h.P(g.Text(m.Bio.In(st.Lang))),
					)
				})),
			)
		}),
	}
}

// Partners renders partner organisations by tier.
func Partners(st *appctx.State, partners []catalog.Partner) g.Node {
	var order []string
	tiers := map[string][]catalog.Partner{}
	for _, p := range partners {
		if _, ok := tiers[p.Tier]; !ok {
			order = append(order, p.Tier)
		}
		tiers[p.Tier] = append(tiers[p.Tier], p)
	}
	return g.Group{
		hero(st.T("partners.title"), st.T("partners.lead"), btn("/contact", st.T("partners.cta"))),
		g.Map(order, func(tier string) g.Node {
			return section(st.T("partners.tier."+tier), partnerGrid(tiers[tier]))
		}),
	}
}

// Programs renders the program index.
func Programs(st *appctx.State, programs []catalog.Program) g.Node {
	return g.Group{
		hero(st.T("programs.title"), st.T("programs.lead")),
		section("", h.Div(h.Class("grid"), g.Map(programs, func(p catalog.Program) g.Node { return programCard(st, p) }))),
	}
}

// ProgramDetail renders one program with its alumni.
func ProgramDetail(st *appctx.State, p catalog.Program, alumni []catalog.Startup) g.Node {
	var cta g.Node
	if p.Open {
		cta = btn("/apply/"+p.Slug, st.T("programs.apply_now"))
	} else {
		cta = h.Span(h.Class("badge"), g.Text(st.T("programs.closed")))
	}
	return g.Group{
		hero(p.Name.In(st.Lang), p.Tagline.In(st.Lang), cta),
		section("",
			h.P(h.Class("prose"), g.Text(p.Summary.In(st.Lang))),
			h.Dl(h.Class("facts"),
				h.Dt(g.Text(st.T("programs.duration"))), h.Dd(g.Text(p.Duration.In(st.Lang))),
				h.Dt(g.Text(st.T("programs.stage"))), h.Dd(g.Text(st.T("apply.stage."+p.Stage))),
				g.If(!p.Deadline.IsZero(), g.Group{
					h.Dt(g.Text(st.T("programs.deadline"))), h.Dd(dateTime(st, p.Deadline)),
				}),
			),
		),
		g.If(len(p.Benefits) > 0, section(st.T("programs.benefits"),
			h.Ul(h.Class("benefits"), g.Map(p.Benefits, func(b catalog.Text) g.Node { return h.Li(g.Text(b.In(st.Lang))) })),
		)),
		g.If(len(alumni) > 0, section(st.T("programs.alumni"),
			h.Div(h.Class("grid"), g.Map(alumni, func(s catalog.Startup) g.Node { return startupCard(st, s) })),
		)),
	}
}

// CommunityData feeds the community overview.
type CommunityData struct {
	Intro    g.Node
	Startups []catalog.Startup
	Mentors  int
	Sectors  int
	Headline string
	Summary  string
}

// Community renders the community overview.
func Community(st *appctx.State, d CommunityData) g.Node {
	return g.Group{
		hero(d.Headline, d.Summary,
			btn("/community/startups", st.T("nav.community.startups")),
			ghostBtn("/community/mentors", st.T("nav.community.mentors")),
		),
		section("",
			h.Ul(h.Class("stats"),
				h.Li(h.Strong(g.Text(strconv.Itoa(len(d.Startups)))), g.Text(" "+st.T("community.stat.startups"))),
				h.Li(h.Strong(g.Text(strconv.Itoa(d.Mentors))), g.Text(" "+st.T("community.stat.mentors"))),
				h.Li(h.Strong(g.Text(strconv.Itoa(d.Sectors))), g.Text(" "+st.T("community.stat.sectors"))),
			),
			g.If(d.Intro != nil, h.Div(h.Class("prose"), d.Intro)),
		),
	}
}

// Startups renders the startup showcase with a sector filter.
func Startups(st *appctx.State, startups []catalog.Startup, sectors []string, active string) g.Node {
	filter := func(value, label string) g.Node {
		href := "/community/startups"
		if value != "" {
			href += "?sector=" + value
		}
		return h.Li(h.A(c.Classes{"chip": true, "active": value == active}, h.Href(href),
			g.If(value == active, g.Attr("aria-current", "true")),
			g.Text(label),
		))
	}
	return g.Group{
		hero(st.T("startups.title"), st.T("startups.lead")),
		section("",
			h.Ul(h.Class("filters"),
				filter("", st.T("startups.all")),
				g.Map(sectors, func(s string) g.Node { return filter(s, st.T("sector."+s)) }),
			),
			g.If(len(startups) == 0, empty(st, "startups.empty")),
			h.Div(h.Class("grid"), h.ID("startup-list"), g.Map(startups, func(s catalog.Startup) g.Node { return startupCard(st, s) })),
		),
	}
}

// Mentors renders the mentor network.
func Mentors(st *appctx.State, mentors []catalog.Mentor) g.Node {
	return g.Group{
		hero(st.T("mentors.title"), st.T("mentors.lead"), btn("/contact", st.T("mentors.cta"))),
		section("", h.Div(h.Class("grid"), g.Map(mentors, func(m catalog.Mentor) g.Node {
			return card(
				g.Iff(m.Photo != "", func() g.Node { return h.Img(h.Src(m.Photo), h.Alt(m.Name), h.Loading("lazy")) }),
				h.H3(g.Text(m.Name)),
				h.P(h.Class("role"), g.Text(m.Company)),
				h.P(g.Text(m.Expertise.In(st.Lang))),
			)
		}))),
	}
}

// Events renders upcoming and past events.
func Events(st *appctx.State, upcoming, past []catalog.Event) g.Node {
	return g.Group{
		hero(st.T("events.title"), st.T("events.lead"), ghostBtn("/events/sef", st.T("nav.events.sef"))),
		section(st.T("events.upcoming"),
			g.If(len(upcoming) == 0, empty(st, "events.none")),
			h.Div(h.Class("grid"), g.Map(upcoming, func(e catalog.Event) g.Node { return eventCard(st, e) })),
		),
		g.If(len(past) > 0, section(st.T("events.past"),
			h.Div(h.Class("grid"), g.Map(past, func(e catalog.Event) g.Node { return eventCard(st, e) })),
		)),
	}
}

// EventDetail renders one event.
func EventDetail(st *appctx.State, e catalog.Event) g.Node {
	var actions []g.Node
	if e.URL != "" {
		actions = append(actions, h.A(h.Class("btn"), h.Href(e.URL), h.Rel("noopener"), h.Target("_blank"), g.Text(st.T("events.register"))))
	}
	return g.Group{
		hero(e.Title.In(st.Lang), e.Summary.In(st.Lang), actions...),
		section("",
			h.Dl(h.Class("facts"),
				h.Dt(g.Text(st.T("events.when"))), h.Dd(dateTime(st, e.Starts),
					g.If(!e.Ends.IsZero() && !sameDay(e.Starts, e.Ends), g.Group{g.Text(" – "), dateTime(st, e.Ends)})),
				h.Dt(g.Text(st.T("events.where"))), h.Dd(g.Text(e.Location.In(st.Lang))),
			),
		),
	}
}
