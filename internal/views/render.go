// Package views renders the site's HTML with gomponents. Every page is
// exposed as a templ.Component so handlers serve it through templ.Handler.
package views

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"

	"sheraa.ae/site/internal/nav"
	"sheraa.ae/site/internal/seo"
	"sheraa.ae/site/internal/session"
)

// Component adapts a gomponents node to templ.
func Component(node g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if node == nil {
			return nil
		}
		return node.Render(w)
	})
}

// Render writes node with the given status code.
func Render(w http.ResponseWriter, r *http.Request, status int, node g.Node) {
	if status == 0 {
		status = http.StatusOK
	}
	templ.Handler(Component(node), templ.WithStatus(status)).ServeHTTP(w, r)
}

// Page is the per-route content placed inside the layout.
type Page struct {
	Meta   seo.Meta
	Crumbs []nav.Crumb
	Body   g.Node
}

// Chrome is the shared frame around every page.
type Chrome struct {
	Items      []nav.RenderedItem
	Footer     []nav.Column
	Newsletter FormState
	Toasts     []session.Toast
}
