package views

import (
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/nav"
	"sheraa.ae/site/internal/seo"
)

// NavEndpoint receives header UI events.
const NavEndpoint = "/ui/nav"

// Header renders the site header. It is also the fragment returned by the
// navigation UI endpoint, so it targets itself for every event.
func Header(st *appctx.State, items []nav.RenderedItem) g.Node {
	v := st.Nav
	return h.Header(
		h.ID("site-header"),
		c.Classes{
			"site-header":     true,
			"is-sticky":       v.Sticky,
			"is-scrolled":     v.Scrolled,
			"is-scrolling-up": v.ScrollingUp,
		},
		g.Attr("hx-target", "#site-header"),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-include", "#nav-path"),
		g.Attr("hx-sync", "this:replace"),
		h.Input(h.Type("hidden"), h.ID("nav-path"), h.Name("path"), h.Value(st.Path)),
		navTrigger("scroll from:window throttle:100ms", `js:{event: "scroll", y: Math.round(window.scrollY)}`),
		g.If(v.ClosePending > 0, navTrigger(fmt.Sprintf("load delay:%dms", v.ClosePending.Milliseconds()), eventVals("tick", ""))),
		g.If(v.OpenGroup != "", navTrigger(
			"click[!event.target.closest('.has-menu')] from:document, keyup[key=='Escape'] from:document",
			eventVals("outside", ""),
		)),
		h.Div(h.Class("container bar"),
			h.A(h.Class("brand"), h.Href("/"), g.Text(st.T("site.name"))),
			h.Nav(h.Class("desktop-nav"), g.Attr("aria-label", st.T("a11y.primary_nav")),
				h.Ul(h.Class("nav-list"),
					g.Map(items, func(it nav.RenderedItem) g.Node { return navItem(st, it) }),
				),
			),
			h.Div(h.Class("header-actions"),
				localeSwitch(st),
				themeToggle(st),
				mobileToggle(st),
			),
		),
		g.If(v.MobileOpen, mobileDrawer(st, items)),
	)
}

func navTrigger(trigger, vals string) g.Node {
	return h.Div(h.Class("hp"), g.Attr("aria-hidden", "true"),
		g.Attr("hx-post", NavEndpoint),
		g.Attr("hx-trigger", trigger),
		g.Attr("hx-vals", vals),
	)
}

func eventVals(event, group string) string {
	vals := map[string]string{"event": event}
	if group != "" {
		vals["group"] = group
	}
	return seo.JSON(vals)
}

func navItem(st *appctx.State, it nav.RenderedItem) g.Node {
	label := st.T(it.LabelKey)
	if !it.HasMenu() {
		return h.Li(h.Class("nav-item"),
			h.A(
				c.Classes{"nav-link": true, "active": it.Active, "special": it.Special},
				h.Href(it.Href),
				g.If(it.Current, g.Attr("aria-current", "page")),
				g.Text(label),
			),
		)
	}

	open := st.Nav.OpenGroup == it.ID
	panelID := "mega-" + it.ID
	return h.Li(
		c.Classes{"nav-item": true, "has-menu": true, "open": open},
		g.Attr("hx-post", NavEndpoint),
		g.Attr("hx-trigger", "mouseenter, mouseleave"),
		g.Attr("hx-vals", fmt.Sprintf(`js:{event: event.type === "mouseenter" ? "enter" : "leave", group: %s}`, strconv.Quote(it.ID))),
		h.Button(
			h.Type("button"),
			c.Classes{"nav-link": true, "active": it.Active},
			h.ID("trigger-"+it.ID),
			g.Attr("aria-haspopup", "true"),
			g.Attr("aria-expanded", strconv.FormatBool(open)),
			g.Attr("aria-controls", panelID),
			g.If(it.Active, g.Attr("aria-current", "true")),
			g.Attr("hx-post", NavEndpoint),
			g.Attr("hx-trigger", "click"),
			g.Attr("hx-vals", eventVals("click", it.ID)),
			g.Text(label),
		),
		g.If(open, megaPanel(st, it, panelID)),
	)
}

func megaPanel(st *appctx.State, it nav.RenderedItem, id string) g.Node {
	return h.Div(h.ID(id), h.Class("mega"),
		g.Attr("role", "menu"),
		g.Attr("aria-labelledby", "trigger-"+it.ID),
		g.Map(it.SubItems, func(s nav.RenderedSubItem) g.Node {
			return h.A(
				c.Classes{"active": s.Active},
				h.Href(s.Href),
				g.Attr("role", "menuitem"),
				g.If(s.Active, g.Attr("aria-current", "page")),
				h.Strong(g.Text(st.T(s.LabelKey))),
				g.If(s.DescriptionKey != "", h.Small(g.Text(st.T(s.DescriptionKey)))),
			)
		}),
	)
}

func mobileToggle(st *appctx.State) g.Node {
	open := st.Nav.MobileOpen
	labelKey := "nav.menu.open"
	if open {
		labelKey = "nav.menu.close"
	}
	return h.Button(
		h.Type("button"),
		h.Class("mobile-toggle nav-link"),
		g.Attr("aria-expanded", strconv.FormatBool(open)),
		g.Attr("aria-controls", "mobile-menu"),
		g.Attr("aria-label", st.T(labelKey)),
		g.Attr("hx-post", NavEndpoint),
		g.Attr("hx-vals", eventVals("mobile-toggle", "")),
		g.Text("☰"),
	)
}

func mobileDrawer(st *appctx.State, items []nav.RenderedItem) g.Node {
	return g.Group{
		h.Div(h.Class("mobile-backdrop"),
			g.Attr("hx-post", NavEndpoint),
			g.Attr("hx-trigger", "click"),
			g.Attr("hx-vals", eventVals("backdrop", "")),
		),
		h.Div(h.ID("mobile-menu"), h.Class("mobile-drawer"),
			g.Attr("role", "dialog"),
			g.Attr("aria-modal", "true"),
			g.Attr("aria-label", st.T("nav.menu")),
			h.Ul(h.Class("mobile-list"),
				g.Map(items, func(it nav.RenderedItem) g.Node {
					return h.Li(
						h.A(c.Classes{"nav-link": true, "active": it.Active, "special": it.Special},
							h.Href(it.Href),
							g.If(it.Current, g.Attr("aria-current", "page")),
							g.Text(st.T(it.LabelKey)),
						),
						g.If(it.HasMenu(), h.Ul(
							g.Map(it.SubItems, func(s nav.RenderedSubItem) g.Node {
								return h.Li(h.A(c.Classes{"active": s.Active}, h.Href(s.Href),
									g.If(s.Active, g.Attr("aria-current", "page")),
									g.Text(st.T(s.LabelKey)),
								))
							}),
						)),
					)
				}),
			),
		),
	}
}

func localeSwitch(st *appctx.State) g.Node {
	target, label := "ar", "العربية"
	if st.Lang == "ar" {
		target, label = "en", "English"
	}
	return h.A(h.Class("nav-link locale"),
		h.Href(st.Path+"?hl="+target),
		g.Attr("hreflang", target),
		g.Attr("hx-boost", "false"),
		g.Text(label),
	)
}

func themeToggle(st *appctx.State) g.Node {
	return g.El("form",
		h.Method("post"), h.Action("/ui/theme"),
		g.Attr("hx-post", "/ui/theme"),
		g.Attr("hx-swap", "none"),
		csrfField(st),
		h.Input(h.Type("hidden"), h.Name("theme"), h.Value(string(st.Theme.Next()))),
		h.Button(h.Type("submit"), h.Class("nav-link"),
			g.Attr("aria-label", st.T("theme.toggle")),
			g.Text(st.T("theme."+string(st.Theme))),
		),
	)
}

func csrfField(st *appctx.State) g.Node {
	return h.Input(h.Type("hidden"), h.Name("csrf_token"), h.Value(st.CSRFToken))
}
