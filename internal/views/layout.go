package views

import (
	"fmt"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/nav"
	"sheraa.ae/site/internal/seo"
	"sheraa.ae/site/internal/session"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// 422 responses carry re-rendered forms and must be swapped in.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"422","swap":true},{"code":"[45]..","swap":false,"error":true}]}`

// Document renders a full HTML page.
func Document(st *appctx.State, ch Chrome, p Page) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang(st.Lang),
			g.Attr("dir", st.Dir()),
			c.Classes{"theme-" + string(st.Theme): true},
			h.Head(head(st, p.Meta)),
			h.Body(
				c.Classes{"scroll-locked": st.Nav.Locked},
				g.Attr("hx-boost", "true"),
				g.Attr("hx-headers", seo.JSON(map[string]string{"X-CSRF-Token": st.CSRFToken})),
				analyticsNoScript(st),
				h.A(h.Class("hp"), h.Href("#main"), g.Text(st.T("a11y.skip"))),
				Header(st, ch.Items),
				h.Main(h.ID("main"),
					Breadcrumbs(st, p.Crumbs),
					p.Body,
				),
				Footer(st, ch.Footer, ch.Newsletter),
				Toasts(st, ch.Toasts),
			),
		),
	)
}

func head(st *appctx.State, m seo.Meta) g.Node {
	return g.Group{
		h.Meta(h.Charset("utf-8")),
		h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
		h.Meta(h.Name("htmx-config"), h.Content(htmxConfig)),
		g.El("title", g.Text(m.Title)),
		g.If(m.Description != "", h.Meta(h.Name("description"), h.Content(m.Description))),
		g.If(m.NoIndex, h.Meta(h.Name("robots"), h.Content("noindex"))),
		g.If(m.Canonical != "", h.Link(h.Rel("canonical"), h.Href(m.Canonical))),
		g.Map(m.Alternates, func(a seo.Alternate) g.Node {
			return h.Link(h.Rel("alternate"), g.Attr("hreflang", a.Lang), h.Href(a.Href))
		}),
		ogTag("og:title", m.OG.Title),
		ogTag("og:description", m.OG.Description),
		ogTag("og:type", m.OG.Type),
		ogTag("og:url", m.OG.URL),
		ogTag("og:image", m.OG.Image),
		ogTag("og:locale", m.OG.Locale),
		g.If(m.Twitter.Card != "", h.Meta(h.Name("twitter:card"), h.Content(m.Twitter.Card))),
		g.If(m.Twitter.Image != "", h.Meta(h.Name("twitter:image"), h.Content(m.Twitter.Image))),
		g.Map(m.JSONLD, func(v map[string]any) g.Node {
			return h.Script(h.Type("application/ld+json"), g.Raw(seo.JSON(v)))
		}),
		h.Link(h.Rel("stylesheet"), h.Href("/static/site.css")),
		h.Script(h.Src(htmxSrc), h.Defer()),
		h.Script(h.Src("/static/site.js"), h.Defer()),
		analytics(st.Analytics),
	}
}

func ogTag(property, value string) g.Node {
	if value == "" {
		return nil
	}
	return h.Meta(g.Attr("property", property), h.Content(value))
}

func analytics(a appctx.Analytics) g.Node {
	return g.Group{
		g.If(a.GA4MeasurementID != "", g.Group{
			h.Script(h.Async(), h.Src("https://www.googletagmanager.com/gtag/js?id="+a.GA4MeasurementID)),
			h.Script(g.Raw(fmt.Sprintf(
				"window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config',%s);",
				seo.JSON(a.GA4MeasurementID),
			))),
		}),
		g.If(a.GTMContainerID != "", h.Script(g.Raw(fmt.Sprintf(
			"(function(w,d,s,l,i){w[l]=w[l]||[];w[l].push({'gtm.start':new Date().getTime(),event:'gtm.js'});var f=d.getElementsByTagName(s)[0],j=d.createElement(s);j.async=true;j.src='https://www.googletagmanager.com/gtm.js?id='+i;f.parentNode.insertBefore(j,f);})(window,document,'script','dataLayer',%s);",
			seo.JSON(a.GTMContainerID),
		)))),
	}
}

func analyticsNoScript(st *appctx.State) g.Node {
	id := st.Analytics.GTMContainerID
	if id == "" {
		return nil
	}
	return g.El("noscript", g.El("iframe",
		h.Src("https://www.googletagmanager.com/ns.html?id="+id),
		h.Height("0"), h.Width("0"),
		h.Style("display:none;visibility:hidden"),
	))
}

// Breadcrumbs renders the trail when deeper than the home page.
func Breadcrumbs(st *appctx.State, crumbs []nav.Crumb) g.Node {
	if len(crumbs) < 2 {
		return nil
	}
	return h.Nav(h.Class("breadcrumbs container"), g.Attr("aria-label", st.T("a11y.breadcrumbs")),
		h.Ol(g.Map(crumbs, func(cr nav.Crumb) g.Node {
			label := crumbLabel(st, cr)
			if cr.Active {
				return h.Li(h.Span(g.Attr("aria-current", "page"), g.Text(label)))
			}
			return h.Li(h.A(h.Href(cr.Href), g.Text(label)))
		})),
	)
}

func crumbLabel(st *appctx.State, cr nav.Crumb) string {
	if cr.LabelKey != "" && st.Bundle != nil && st.Bundle.Has(cr.LabelKey) {
		return st.T(cr.LabelKey)
	}
	return cr.Label
}

// Toasts renders queued notifications. site.js appends toasts raised via HX-Trigger.
func Toasts(st *appctx.State, toasts []session.Toast) g.Node {
	return h.Div(h.ID("toasts"), h.Class("toasts"), g.Attr("aria-live", "polite"),
		g.Map(toasts, func(t session.Toast) g.Node {
			return h.Div(c.Classes{"toast": true, t.Kind: t.Kind != ""}, g.Attr("role", "status"), g.Text(st.T(t.Key)))
		}),
	)
}
