package views

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/nav"
)

// Footer renders the link columns and the newsletter signup.
func Footer(st *appctx.State, columns []nav.Column, newsletter FormState) g.Node {
	return h.Footer(h.Class("site-footer"),
		h.Div(h.Class("container footer-grid"),
			h.Div(
				h.Strong(g.Text(st.T("site.name"))),
				h.P(g.Text(st.T("footer.tagline"))),
			),
			g.Map(columns, func(col nav.Column) g.Node {
				return h.Div(h.Class("footer-column"),
					h.H3(g.Text(st.T(col.TitleKey))),
					h.Ul(g.Map(col.Links, func(l nav.SubItem) g.Node {
						return h.Li(h.A(h.Href(l.Path), g.Text(st.T(l.LabelKey))))
					})),
				)
			}),
			h.Div(
				h.H3(g.Text(st.T("newsletter.title"))),
				NewsletterForm(st, newsletter),
			),
		),
		h.Div(h.Class("container"),
			h.Small(g.Text(st.Tf("footer.copyright", strconv.Itoa(time.Now().Year())))),
		),
	)
}
