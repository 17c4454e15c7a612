package views

import (
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"sheraa.ae/site/internal/appctx"
)

func hero(title, lead string, actions ...g.Node) g.Node {
	return h.Section(h.Class("hero container"),
		h.H1(g.Text(title)),
		g.If(lead != "", h.P(h.Class("lead"), g.Text(lead))),
		g.If(len(actions) > 0, h.Div(h.Class("actions"), g.Group(actions))),
	)
}

func section(title string, children ...g.Node) g.Node {
	return h.Section(h.Class("container section"),
		g.If(title != "", h.H2(g.Text(title))),
		g.Group(children),
	)
}

func card(children ...g.Node) g.Node {
	return h.Article(h.Class("card"), g.Group(children))
}

func btn(href, label string) g.Node {
	return h.A(h.Class("btn"), h.Href(href), g.Text(label))
}

func ghostBtn(href, label string) g.Node {
	return h.A(h.Class("btn ghost"), h.Href(href), g.Text(label))
}

func empty(st *appctx.State, key string) g.Node {
	return h.P(h.Class("empty"), g.Text(st.T(key)))
}

func dateTime(st *appctx.State, t time.Time) g.Node {
	if t.IsZero() {
		return nil
	}
	return g.El("time", g.Attr("datetime", t.Format(time.RFC3339)), g.Text(formatDate(st.Lang, t)))
}

var arabicMonths = [...]string{"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"}

func formatDate(lang string, t time.Time) string {
	if lang == "ar" {
		return t.Format("2") + " " + arabicMonths[t.Month()-1] + " " + t.Format("2006")
	}
	return t.Format("2 January 2006")
}

func rawHTML(s string) g.Node { return g.Raw(s) }

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
