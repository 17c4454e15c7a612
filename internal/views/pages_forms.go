package views

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/catalog"
	"sheraa.ae/site/internal/submissions"
)

// Contact renders the contact page.
func Contact(st *appctx.State, fs FormState) g.Node {
	return g.Group{
		hero(st.T("contact.title"), st.T("contact.lead")),
		h.Div(h.Class("container two-col"),
			ContactForm(st, fs),
			h.Aside(h.Class("card"),
				h.H3(g.Text(st.T("contact.visit"))),
				h.P(g.Text(st.T("contact.address"))),
				h.P(h.A(h.Href("mailto:info@sheraa.ae"), g.Text("info@sheraa.ae"))),
			),
		),
	}
}

// Apply renders the application page.
func Apply(st *appctx.State, programs []catalog.Program, fs FormState) g.Node {
	return g.Group{
		hero(st.T("apply.title"), st.T("apply.lead")),
		h.Div(h.Class("container"), ApplicationForm(st, programs, fs)),
	}
}

// LoginProps configures the sign-in page.
type LoginProps struct {
	Provider  string
	ProjectID string
	Next      string
}

// Login renders the sign-in page. The hosted provider's client exchanges
// credentials for an ID token that is posted to /auth/session.
func Login(st *appctx.State, p LoginProps) g.Node {
	return g.Group{
		hero(st.T("login.title"), st.T("login.lead")),
		h.Div(h.Class("container narrow"),
			g.El("form", h.ID("login-form"), h.Class("site-form card"),
				h.Method("post"), h.Action("/auth/session"),
				g.Attr("hx-post", "/auth/session"),
				g.Attr("hx-swap", "none"),
				g.Attr("data-auth-provider", p.Provider),
				g.If(p.ProjectID != "", g.Attr("data-project-id", p.ProjectID)),
				csrfField(st),
				h.Input(h.Type("hidden"), h.Name("next"), h.Value(p.Next)),
				h.Div(h.Class("field"),
					g.El("label", h.For("login-token"), g.Text(st.T("login.token"))),
					h.Input(h.Type("text"), h.ID("login-token"), h.Name("idToken"), h.Required(), h.AutoComplete("off")),
					g.If(p.Provider == "dev", h.Small(g.Text(st.T("login.dev_hint")))),
				),
				h.Button(h.Type("submit"), h.Class("btn"), g.Text(st.T("login.submit"))),
			),
		),
	}
}

// Portal renders the signed-in founder's dashboard.
func Portal(st *appctx.State, subs []submissions.Submission) g.Node {
	name, verified := "", false
	if st.User != nil {
		verified = st.User.Verified
		name = st.User.Name
		if name == "" {
			name = st.User.Email
		}
	}
	return g.Group{
		hero(st.Tf("portal.title", name), st.T("portal.lead")),
		section(st.T("portal.submissions"),
			g.If(!verified, h.P(h.ID("portal-unverified"), h.Class("empty"), g.Text(st.T("portal.unverified")))),
			g.If(verified && len(subs) == 0, empty(st, "portal.empty")),
			g.If(len(subs) > 0, h.Table(h.Class("table"),
				h.THead(h.Tr(
					h.Th(g.Text(st.T("portal.kind"))),
					h.Th(g.Text(st.T("portal.reference"))),
					h.Th(g.Text(st.T("portal.date"))),
				)),
				h.TBody(g.Map(subs, func(s submissions.Submission) g.Node {
					return h.Tr(
						h.Td(g.Text(st.T("portal.kind."+s.Kind))),
						h.Td(h.Code(g.Text(s.ID))),
						h.Td(dateTime(st, s.CreatedAt)),
					)
				})),
			)),
		),
		h.Div(h.Class("container"),
			g.El("form", h.Method("post"), h.Action("/auth/logout"),
				csrfField(st),
				h.Button(h.Type("submit"), h.Class("btn ghost"), g.Text(st.T("portal.logout"))),
			),
		),
	}
}

// NotFound renders the 404 page.
func NotFound(st *appctx.State) g.Node {
	return hero(st.T("error.not_found.title"), st.T("error.not_found.lead"),
		btn("/", st.T("error.home")),
		ghostBtn("/contact", st.T("nav.contact")),
	)
}

// ErrorPage renders the generic failure page with a reload prompt.
func ErrorPage(st *appctx.State) g.Node {
	return hero(st.T("error.generic.title"), st.T("error.generic.lead"),
		h.A(h.Class("btn"), h.Href(st.Path), g.Attr("hx-boost", "false"), g.Text(st.T("error.reload"))),
		ghostBtn("/", st.T("error.home")),
	)
}

// Newsletter renders the standalone subscription page shown when the footer
// form is posted without htmx and fails validation. The form itself stays in
// the footer.
func Newsletter(st *appctx.State) g.Node {
	return hero(st.T("newsletter.title"), st.T("newsletter.lead"),
		h.A(h.Class("btn"), h.Href("#newsletter-form"), g.Text(st.T("newsletter.subscribe"))),
	)
}
