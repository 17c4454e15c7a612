package views

import (
	"strconv"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/catalog"
	"sheraa.ae/site/internal/cms"
)

// ContentPage renders a CMS page with its table of contents.
func ContentPage(st *appctx.State, p cms.Page) g.Node {
	return g.Group{
		hero(p.Title, p.Summary),
		g.Iff(p.Banner != nil, func() g.Node { return banner(p.Banner) }),
		h.Div(h.Class("container content-layout"),
			g.If(len(p.Headings) > 1, toc(st, p.Headings)),
			h.Article(h.Class("prose"), rawHTML(p.HTML)),
		),
		g.If(!p.UpdatedAt.IsZero(), h.Div(h.Class("container"),
			h.Small(g.Text(st.T("content.updated")+" "), dateTime(st, p.UpdatedAt)),
		)),
	}
}

func banner(b *cms.Banner) g.Node {
	variant := b.Variant
	if variant == "" {
		variant = "info"
	}
	return h.Div(c.Classes{"container": true, "banner": true, "banner-" + variant: true}, g.Attr("role", "note"),
		g.If(b.Title != "", h.Strong(g.Text(b.Title))),
		h.P(g.Text(b.Message)),
		g.If(b.LinkURL != "", h.A(h.Href(b.LinkURL), g.Text(b.LinkText))),
	)
}

func toc(st *appctx.State, headings []cms.Heading) g.Node {
	return h.Aside(h.Class("toc"), g.Attr("aria-label", st.T("content.toc")),
		h.Strong(g.Text(st.T("content.toc"))),
		h.Ol(g.Map(headings, func(hd cms.Heading) g.Node {
			return h.Li(c.Classes{"level-" + strconv.Itoa(hd.Level): true}, h.A(h.Href("#"+hd.ID), g.Text(hd.Text)))
		})),
	)
}

// ResourcesData feeds the resource library. A non-nil Err renders the inline
// fallback in place of the listing.
type ResourcesData struct {
	Pages    []cms.Page
	Category string
	Err      error
}

// Resources renders the resource library.
func Resources(st *appctx.State, d ResourcesData) g.Node {
	return g.Group{
		hero(st.T("resources.title"), st.T("resources.lead")),
		section("", ResourceList(st, d)),
	}
}

// ResourceList is the listing region. It is its own error boundary.
func ResourceList(st *appctx.State, d ResourcesData) g.Node {
	if d.Err != nil {
		return Boundary(st, "resource-list", "/resources")
	}
	return h.Div(h.ID("resource-list"),
		g.If(len(d.Pages) == 0, empty(st, "resources.empty")),
		h.Div(h.Class("grid"), g.Map(d.Pages, func(p cms.Page) g.Node {
			return card(
				g.If(p.Category != "", h.Span(h.Class("badge"), g.Text(p.Category))),
				h.H3(h.A(h.Href("/resources/"+p.Slug), g.Text(p.Title))),
				h.P(g.Text(p.Summary)),
				h.Small(dateTime(st, p.PublishedAt), g.Text(" · "+st.Tf("resources.reading_time", strconv.Itoa(p.ReadingTime)))),
			)
		})),
	)
}

// Boundary renders the inline fallback for a region that failed to load.
// The reload button refetches only that region.
func Boundary(st *appctx.State, id, reloadURL string) g.Node {
	return h.Div(h.ID(id), h.Class("boundary"), g.Attr("role", "alert"),
		h.P(g.Text(st.T("error.section"))),
		h.Button(h.Type("button"), h.Class("btn ghost"),
			g.Attr("hx-get", reloadURL),
			g.Attr("hx-select", "#"+id),
			g.Attr("hx-target", "#"+id),
			g.Attr("hx-swap", "outerHTML"),
			g.Text(st.T("error.reload")),
		),
	)
}

// ResourceDetail renders one resource article.
func ResourceDetail(st *appctx.State, p cms.Page) g.Node {
	return g.Group{
		hero(p.Title, p.Summary),
		h.Div(h.Class("container meta"),
			g.If(p.Author != "", h.Span(g.Text(p.Author+" · "))),
			dateTime(st, p.PublishedAt),
			h.Span(g.Text(" · "+st.Tf("resources.reading_time", strconv.Itoa(p.ReadingTime)))),
		),
		h.Div(h.Class("container content-layout"),
			g.If(len(p.Headings) > 1, toc(st, p.Headings)),
			h.Article(h.Class("prose"), rawHTML(p.HTML)),
		),
		g.If(len(p.Tags) > 0, h.Ul(h.Class("container tags"), g.Map(p.Tags, func(t string) g.Node {
			return h.Li(h.Class("chip"), g.Text(t))
		}))),
		h.Div(h.Class("container"), ghostBtn("/resources", st.T("resources.back"))),
	}
}

// Careers renders the open positions.
func Careers(st *appctx.State, jobs []catalog.Job) g.Node {
	return g.Group{
		hero(st.T("careers.title"), st.T("careers.lead")),
		section("",
			g.If(len(jobs) == 0, empty(st, "careers.empty")),
			h.Ul(h.Class("job-list"), g.Map(jobs, func(j catalog.Job) g.Node {
				return h.Li(h.Class("card"),
					h.H3(h.A(h.Href("/careers/"+j.Slug), g.Text(j.Title.In(st.Lang)))),
					h.P(g.Text(j.Department+" · "+j.Location+" · "+j.Type)),
					h.Small(g.Text(st.T("careers.posted")+" "), dateTime(st, j.Posted)),
				)
			})),
		),
	}
}

// JobDetail renders one opening.
func JobDetail(st *appctx.State, j catalog.Job) g.Node {
	apply := j.ApplyURL
	if apply == "" {
		apply = "/contact"
	}
	return g.Group{
		hero(j.Title.In(st.Lang), j.Department+" · "+j.Location, btn(apply, st.T("careers.apply"))),
		section("",
			h.Div(h.Class("prose"), g.Text(j.Description.In(st.Lang))),
			h.Small(g.Text(st.T("careers.posted")+" "), dateTime(st, j.Posted)),
		),
		h.Div(h.Class("container"), ghostBtn("/careers", st.T("careers.back"))),
	}
}
