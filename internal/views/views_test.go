package views_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"sheraa.ae/site/content"
	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/forms"
	"sheraa.ae/site/internal/i18n"
	"sheraa.ae/site/internal/nav"
	"sheraa.ae/site/internal/navstate"
	"sheraa.ae/site/internal/views"
)

func state(t *testing.T, path string, v navstate.View) *appctx.State {
	t.Helper()

	bundle, err := i18n.Load(content.FS, "locales", "en", []string{"en", "ar"})
	require.NoError(t, err)
	return &appctx.State{Lang: "en", Path: path, CSRFToken: "tok", Nav: v, Bundle: bundle, Theme: appctx.ThemeSystem}
}

func items(t *testing.T, path string) []nav.RenderedItem {
	t.Helper()

	menu, err := nav.Load(content.FS, content.NavigationFile)
	require.NoError(t, err)
	return menu.Build(path)
}

func render(t *testing.T, node g.Node) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, node.Render(&buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestHeaderReflectsChromeView(t *testing.T) {
	st := state(t, "/programs", navstate.View{Sticky: true, Scrolled: true, OpenGroup: "programs"})
	doc := render(t, views.Header(st, items(t, "/programs")))

	header := doc.Find("header#site-header")
	require.True(t, header.HasClass("is-sticky"))
	require.True(t, header.HasClass("is-scrolled"))
	require.False(t, header.HasClass("is-scrolling-up"))
	require.Equal(t, "/programs", doc.Find("input#nav-path").AttrOr("value", ""))

	require.Equal(t, 1, doc.Find(".mega").Length())
	require.Equal(t, "true", doc.Find("#trigger-programs").AttrOr("aria-expanded", ""))
	require.Equal(t, "false", doc.Find("#trigger-about").AttrOr("aria-expanded", ""))
	require.Equal(t, 0, doc.Find("#mobile-menu").Length())
}

func TestHeaderSchedulesPendingClose(t *testing.T) {
	st := state(t, "/", navstate.View{OpenGroup: "about", ClosePending: 150 * time.Millisecond})
	doc := render(t, views.Header(st, items(t, "/")))

	tick := doc.Find(`[hx-trigger="load delay:150ms"]`)
	require.Equal(t, 1, tick.Length())
	require.Contains(t, tick.AttrOr("hx-vals", ""), `"tick"`)
}

func TestHeaderMobileDrawer(t *testing.T) {
	st := state(t, "/events", navstate.View{MobileOpen: true, Locked: true})
	doc := render(t, views.Header(st, items(t, "/events")))

	require.Equal(t, 1, doc.Find("#mobile-menu[role=dialog]").Length())
	require.Equal(t, 1, doc.Find(".mobile-backdrop").Length())
	toggle := doc.Find("button.mobile-toggle")
	require.Equal(t, "true", toggle.AttrOr("aria-expanded", ""))
	require.Equal(t, "Close menu", toggle.AttrOr("aria-label", ""))
}

func TestContactFormShowsFieldErrors(t *testing.T) {
	st := state(t, "/contact", navstate.View{})
	fs := views.FormState{
		Values: url.Values{"name": {"Layla"}, "email": {"not-an-email"}},
		Errors: forms.Errors{"email": {Field: "email", Key: "form.error.email"}},
	}
	doc := render(t, views.ContactForm(st, fs))

	form := doc.Find("form#contact-form")
	require.Equal(t, "/contact", form.AttrOr("hx-post", ""))
	require.Equal(t, "tok", form.Find(`input[name="csrf_token"]`).AttrOr("value", ""))
	require.Equal(t, "Layla", doc.Find("#contact-name").AttrOr("value", ""))

	email := doc.Find("#contact-email")
	require.Equal(t, "true", email.AttrOr("aria-invalid", ""))
	require.Equal(t, "contact-email-error", email.AttrOr("aria-describedby", ""))
	require.NotEmpty(t, strings.TrimSpace(doc.Find("#contact-email-error").Text()))
	require.Equal(t, 1, doc.Find(".form-summary").Length())
	require.False(t, doc.Find("#contact-name").Is("[aria-invalid]"))
}

func TestContactFormSentResetsValues(t *testing.T) {
	st := state(t, "/contact", navstate.View{})
	doc := render(t, views.ContactForm(st, views.FormState{Sent: true}))

	require.Equal(t, 1, doc.Find(".form-success").Length())
	require.Equal(t, "", doc.Find("#contact-name").AttrOr("value", ""))
	require.Equal(t, 0, doc.Find(".field.invalid").Length())
}

func TestBoundaryReloadsOnlyItsRegion(t *testing.T) {
	st := state(t, "/resources", navstate.View{})
	doc := render(t, views.Boundary(st, "resource-list", "/resources"))

	btn := doc.Find("#resource-list button")
	require.Equal(t, "/resources", btn.AttrOr("hx-get", ""))
	require.Equal(t, "#resource-list", btn.AttrOr("hx-select", ""))
	require.Equal(t, "#resource-list", btn.AttrOr("hx-target", ""))
}

func TestRenderWritesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	views.Render(rec, req, http.StatusUnprocessableEntity, g.Text("bad"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "bad", rec.Body.String())
}
