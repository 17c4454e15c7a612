package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"sheraa.ae/site/internal/auth"
	"sheraa.ae/site/internal/cms"
	"sheraa.ae/site/internal/httpserver"
	"sheraa.ae/site/internal/testutil"
)

type requestOpts struct {
	htmx   bool
	token  string
	header map[string]string
}

func get(t *testing.T, client *http.Client, rawURL string, opts requestOpts) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	require.NoError(t, err)
	return do(t, client, req, opts)
}

func post(t *testing.T, client *http.Client, rawURL string, form url.Values, opts requestOpts) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, client, req, opts)
}

func do(t *testing.T, client *http.Client, req *http.Request, opts requestOpts) *http.Response {
	t.Helper()

	if opts.htmx {
		req.Header.Set("HX-Request", "true")
	}
	if opts.token != "" {
		req.Header.Set("X-CSRF-Token", opts.token)
	}
	for k, v := range opts.header {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

// bootstrap loads the home page to obtain a session cookie and CSRF token.
func bootstrap(t *testing.T, client *http.Client, base string) string {
	t.Helper()

	resp := get(t, client, base+"/", requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return testutil.CSRFToken(t, testutil.ReadDocument(t, resp))
}

func navEvent(t *testing.T, client *http.Client, base, token string, vals url.Values) (*http.Response, *goquery.Document) {
	t.Helper()

	resp := post(t, client, base+"/ui/nav", vals, requestOpts{htmx: true, token: token})
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return resp, nil
	}
	return resp, testutil.ReadDocument(t, resp)
}

func TestHomeRendersLayout(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	resp := get(t, client, ts.URL+"/", requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "en", resp.Header.Get("Content-Language"))
	doc := testutil.ReadDocument(t, resp)

	require.Equal(t, "Sheraa", doc.Find("title").Text())
	html := doc.Find("html")
	require.Equal(t, "en", html.AttrOr("lang", ""))
	require.Equal(t, "ltr", html.AttrOr("dir", ""))
	require.Equal(t, 1, doc.Find("header#site-header").Length())
	require.Equal(t, "page", doc.Find(`.desktop-nav a[href="/"]`).AttrOr("aria-current", ""))
	require.Equal(t, 0, doc.Find("nav.breadcrumbs").Length())
	require.Equal(t, 2, doc.Find(`script[type="application/ld+json"]`).Length())
	require.Equal(t, 1, doc.Find("form#newsletter-form").Length())
}

func TestArabicLocaleSwitchesDirection(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	resp := get(t, client, ts.URL+"/programs?hl=ar", requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ReadDocument(t, resp)
	require.Equal(t, "rtl", doc.Find("html").AttrOr("dir", ""))
	require.Equal(t, "البرامج", strings.TrimSpace(doc.Find("h1").First().Text()))

	// The choice sticks for later requests without the query parameter.
	resp = get(t, client, ts.URL+"/about/team", requestOpts{})
	doc = testutil.ReadDocument(t, resp)
	require.Equal(t, "ar", doc.Find("html").AttrOr("lang", ""))
}

func TestProgramDetailMarksGroupActive(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	resp := get(t, client, ts.URL+"/programs/s3-incubator", requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ReadDocument(t, resp)

	trigger := doc.Find("button#trigger-programs")
	require.Equal(t, "true", trigger.AttrOr("aria-current", ""))
	require.Equal(t, "false", trigger.AttrOr("aria-expanded", ""))
	require.Equal(t, 0, doc.Find("#mega-programs").Length(), "mega menu stays closed on page load")
	require.False(t, doc.Find("button#trigger-about").Is("[aria-current]"))

	crumbs := doc.Find("nav.breadcrumbs li")
	require.Equal(t, 3, crumbs.Length())
	require.Equal(t, "Sheraa Sharjah Startups (S3)", strings.TrimSpace(crumbs.Last().Text()))
	require.Equal(t, "page", crumbs.Last().Find("span").AttrOr("aria-current", ""))
}

func TestUnknownProgramIsNotFound(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	for _, path := range []string{"/programs/nope", "/does-not-exist", "/events/nope", "/resources/nope", "/careers/nope"} {
		resp := get(t, client, ts.URL+path, requestOpts{})
		require.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		doc := testutil.ReadDocument(t, resp)
		require.Equal(t, "Page not found", strings.TrimSpace(doc.Find("h1").First().Text()), path)
		require.Equal(t, "noindex", doc.Find(`meta[name="robots"]`).AttrOr("content", ""), path)
	}
}

func TestMegaMenuOpensAndRejectsUnknownGroup(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)
	token := bootstrap(t, client, ts.URL)

	resp, doc := navEvent(t, client, ts.URL, token, url.Values{"event": {"click"}, "group": {"programs"}, "path": {"/"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "true", doc.Find("button#trigger-programs").AttrOr("aria-expanded", ""))
	require.Equal(t, 4, doc.Find("#mega-programs a").Length())
	require.Equal(t, 0, doc.Find("#mega-about").Length())

	// Entering another group switches the open panel.
	_, doc = navEvent(t, client, ts.URL, token, url.Values{"event": {"enter"}, "group": {"about"}, "path": {"/"}})
	require.Equal(t, 1, doc.Find("#mega-about").Length())
	require.Equal(t, 0, doc.Find("#mega-programs").Length())

	resp, _ = navEvent(t, client, ts.URL, token, url.Values{"event": {"enter"}, "group": {"careers"}, "path": {"/"}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The rejected event left the open group alone.
	_, doc = navEvent(t, client, ts.URL, token, url.Values{"event": {"scroll"}, "y": {"0"}, "path": {"/"}})
	require.Equal(t, 1, doc.Find("#mega-about").Length())

	_, doc = navEvent(t, client, ts.URL, token, url.Values{"event": {"outside"}, "path": {"/"}})
	require.Equal(t, 0, doc.Find(".mega").Length())
}

func TestScrollEventMakesHeaderSticky(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)
	token := bootstrap(t, client, ts.URL)

	_, doc := navEvent(t, client, ts.URL, token, url.Values{"event": {"scroll"}, "y": {"250"}, "path": {"/"}})
	header := doc.Find("header#site-header")
	require.True(t, header.HasClass("is-sticky"))
	require.True(t, header.HasClass("is-scrolled"))

	resp, _ := navEvent(t, client, ts.URL, token, url.Values{"event": {"scroll"}, "y": {"abc"}, "path": {"/"}})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMobileMenuLocksScrollUntilRouteChange(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)
	token := bootstrap(t, client, ts.URL)

	resp, doc := navEvent(t, client, ts.URL, token, url.Values{"event": {"mobile-toggle"}, "path": {"/"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"nav:scroll-lock":{"locked":true}}`, resp.Header.Get("HX-Trigger"))
	require.Equal(t, 1, doc.Find("#mobile-menu").Length())
	require.Equal(t, "true", doc.Find("button.mobile-toggle").AttrOr("aria-expanded", ""))

	// A boosted swap of the same page keeps the drawer and the lock.
	boosted := requestOpts{htmx: true, header: map[string]string{"HX-Boosted": "true"}}
	resp = get(t, client, ts.URL+"/", boosted)
	require.Empty(t, resp.Header.Get("HX-Trigger"))
	doc = testutil.ReadDocument(t, resp)
	require.Equal(t, 1, doc.Find("#mobile-menu").Length())

	// A boosted swap elsewhere closes the menu and tells the client to unlock.
	resp = get(t, client, ts.URL+"/about", boosted)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"nav:scroll-lock":{"locked":false}}`, resp.Header.Get("HX-Trigger"))
	doc = testutil.ReadDocument(t, resp)
	require.Equal(t, 0, doc.Find("#mobile-menu").Length())

	resp, _ = navEvent(t, client, ts.URL, token, url.Values{"event": {"mobile-toggle"}, "path": {"/about"}})
	require.JSONEq(t, `{"nav:scroll-lock":{"locked":true}}`, resp.Header.Get("HX-Trigger"))

	// A full load of the same page starts a fresh document without the drawer.
	resp = get(t, client, ts.URL+"/about", requestOpts{})
	require.Empty(t, resp.Header.Get("HX-Trigger"))
	doc = testutil.ReadDocument(t, resp)
	require.False(t, doc.Find("body").HasClass("scroll-locked"))
	require.Equal(t, 0, doc.Find("#mobile-menu").Length())
	require.Equal(t, "false", doc.Find("button.mobile-toggle").AttrOr("aria-expanded", ""))

	resp, _ = navEvent(t, client, ts.URL, token, url.Values{"event": {"mobile-toggle"}, "path": {"/about"}})
	require.JSONEq(t, `{"nav:scroll-lock":{"locked":true}}`, resp.Header.Get("HX-Trigger"))
	resp, doc = navEvent(t, client, ts.URL, token, url.Values{"event": {"backdrop"}, "path": {"/about"}})
	require.JSONEq(t, `{"nav:scroll-lock":{"locked":false}}`, resp.Header.Get("HX-Trigger"))
	require.Equal(t, 0, doc.Find("#mobile-menu").Length())
}

func TestNavEventRequiresCSRFToken(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)
	bootstrap(t, client, ts.URL)

	resp, _ := navEvent(t, client, ts.URL, "", url.Values{"event": {"mobile-toggle"}, "path": {"/"}})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestContactFormValidationAndSuccess(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)
	token := bootstrap(t, client, ts.URL)

	form := url.Values{
		"name":    {"Layla Haddad"},
		"email":   {"not-an-email"},
		"subject": {"programs"},
		"message": {"I would like to learn more about S3."},
	}
	resp := post(t, client, ts.URL+"/contact", form, requestOpts{htmx: true, token: token})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	doc := testutil.ReadDocument(t, resp)
	email := doc.Find("#contact-email")
	require.Equal(t, "true", email.AttrOr("aria-invalid", ""))
	require.Equal(t, "not-an-email", email.AttrOr("value", ""))
	require.Equal(t, "Enter a valid email address.", strings.TrimSpace(doc.Find("#contact-email-error").Text()))
	require.Equal(t, "Layla Haddad", doc.Find("#contact-name").AttrOr("value", ""))
	require.False(t, doc.Find("#contact-name").Is("[aria-invalid]"))

	form.Set("email", "layla@example.com")
	resp = post(t, client, ts.URL+"/contact", form, requestOpts{htmx: true, token: token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var events map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Header.Get("HX-Trigger")), &events))
	require.Equal(t, "success", events["toast"]["kind"])
	require.Equal(t, "Thanks! Your message is on its way.", events["toast"]["message"])
	doc = testutil.ReadDocument(t, resp)
	require.Equal(t, 1, doc.Find("form#contact-form .form-success").Length())
	require.Equal(t, "", doc.Find("#contact-email").AttrOr("value", ""))
}

func TestContactFormWithoutJavaScript(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)
	token := bootstrap(t, client, ts.URL)

	form := url.Values{
		"csrf_token": {token},
		"name":       {"Omar"},
		"email":      {"omar@example.com"},
		"subject":    {"general"},
		"message":    {"Hello from a browser without scripts."},
	}
	resp := post(t, client, ts.URL+"/contact", form, requestOpts{})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/contact", resp.Header.Get("Location"))

	resp = get(t, client, ts.URL+"/contact", requestOpts{})
	doc := testutil.ReadDocument(t, resp)
	require.Equal(t, "Thanks! Your message is on its way.", strings.TrimSpace(doc.Find("#toasts .toast.success").Text()))

	// Flashes are shown once.
	resp = get(t, client, ts.URL+"/contact", requestOpts{})
	doc = testutil.ReadDocument(t, resp)
	require.Equal(t, 0, doc.Find("#toasts .toast").Length())

	form.Set("email", "")
	resp = post(t, client, ts.URL+"/contact", form, requestOpts{})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	doc = testutil.ReadDocument(t, resp)
	require.Equal(t, 1, doc.Find("html").Length(), "full page is rendered")
	require.Equal(t, "This field is required.", strings.TrimSpace(doc.Find("#contact-email-error").Text()))
}

func TestContactFormRejectsMissingCSRF(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)
	bootstrap(t, client, ts.URL)

	resp := post(t, client, ts.URL+"/contact", url.Values{"email": {"x@example.com"}}, requestOpts{})
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestApplyPreselectsProgram(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	resp := get(t, client, ts.URL+"/apply/startup-dojo", requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ReadDocument(t, resp)
	require.Equal(t, "startup-dojo", doc.Find("#apply-program option[selected]").AttrOr("value", ""))
	applyLink := doc.Find(`.desktop-nav a[href="/apply"]`)
	require.True(t, applyLink.HasClass("active"))
	require.False(t, applyLink.Is("[aria-current]"), "only the exact page is current")

	resp = get(t, client, ts.URL+"/apply/unknown", requestOpts{})
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

type failingContent struct{ httpserver.ContentSource }

func (failingContent) List(context.Context, string, string) ([]cms.Page, error) {
	return nil, errors.New("cms unavailable")
}

func TestResourcesFailureIsContained(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithContent(failingContent{cms.NewClient(nil)}))
	client := testutil.NewClient(t)

	resp := get(t, client, ts.URL+"/resources", requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ReadDocument(t, resp)
	boundary := doc.Find("#resource-list.boundary")
	require.Equal(t, "alert", boundary.AttrOr("role", ""))
	require.Equal(t, "/resources", boundary.Find("button").AttrOr("hx-get", ""))
	require.Equal(t, 1, doc.Find("header#site-header").Length(), "chrome still renders")
}

func TestResourceArticle(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	resp := get(t, client, ts.URL+"/resources", requestOpts{})
	doc := testutil.ReadDocument(t, resp)
	require.Positive(t, doc.Find(`#resource-list a[href="/resources/fundraising-101"]`).Length())

	resp = get(t, client, ts.URL+"/resources/fundraising-101", requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc = testutil.ReadDocument(t, resp)
	require.Equal(t, "Fundraising 101 | Sheraa", doc.Find("title").Text())
	require.Equal(t, "article", doc.Find(`meta[property="og:type"]`).AttrOr("content", ""))
	require.True(t, doc.Find(`.desktop-nav a[href="/resources"]`).HasClass("active"))
}

func TestPortalRequiresSignIn(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithAuthenticator(auth.Passthrough()))
	client := testutil.NewClient(t)

	resp := get(t, client, ts.URL+"/portal", requestOpts{})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login?next=%2Fportal", resp.Header.Get("Location"))

	resp = get(t, client, ts.URL+"/portal", requestOpts{htmx: true})
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "/login?next=%2Fportal", resp.Header.Get("HX-Redirect"))

	token := bootstrap(t, client, ts.URL)
	resp = post(t, client, ts.URL+"/contact", url.Values{
		"name":    {"Founder"},
		"email":   {"founder@example.com"},
		"subject": {"programs"},
		"message": {"Please tell me about the next cohort."},
	}, requestOpts{htmx: true, token: token})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post(t, client, ts.URL+"/auth/session", url.Values{"idToken": {"uid-1|founder@example.com"}, "next": {"/portal"}}, requestOpts{token: token})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/portal", resp.Header.Get("Location"))

	resp = get(t, client, ts.URL+"/portal", requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	doc := testutil.ReadDocument(t, resp)
	require.Equal(t, "Contact message", strings.TrimSpace(doc.Find("table tbody td").First().Text()))
	require.Equal(t, "You are signed in.", strings.TrimSpace(doc.Find("#toasts .toast").Text()))

	resp = post(t, client, ts.URL+"/auth/logout", url.Values{}, requestOpts{token: token})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = get(t, client, ts.URL+"/portal", requestOpts{})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestPortalHidesSubmissionsForUnverifiedEmail(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithAuthenticator(auth.Passthrough()))
	client := testutil.NewClient(t)
	token := bootstrap(t, client, ts.URL)

	resp := post(t, client, ts.URL+"/contact", url.Values{
		"name":    {"Founder"},
		"email":   {"founder@example.com"},
		"subject": {"programs"},
		"message": {"Please tell me about the next cohort."},
	}, requestOpts{htmx: true, token: token})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post(t, client, ts.URL+"/auth/session", url.Values{"idToken": {"uid-2|founder@example.com|unverified"}}, requestOpts{token: token})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = get(t, client, ts.URL+"/portal", requestOpts{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ReadDocument(t, resp)
	require.Equal(t, 0, doc.Find("table").Length())
	require.Equal(t, 1, doc.Find("#portal-unverified").Length())
}

func TestSignInFailureRaisesToast(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)
	token := bootstrap(t, client, ts.URL)

	resp := post(t, client, ts.URL+"/auth/session", url.Values{"idToken": {"anything"}}, requestOpts{htmx: true, token: token})
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("HX-Trigger"), "Sign in failed.")
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	resp := get(t, client, ts.URL+"/login?next=//evil.example", requestOpts{})
	doc := testutil.ReadDocument(t, resp)
	require.Equal(t, "/portal", doc.Find(`#login-form input[name="next"]`).AttrOr("value", ""))
}

func TestThemeToggleStoresPreference(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)
	token := bootstrap(t, client, ts.URL)

	resp := post(t, client, ts.URL+"/ui/theme", url.Values{"theme": {"dark"}}, requestOpts{htmx: true, token: token})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.JSONEq(t, `{"theme:changed":{"theme":"dark"}}`, resp.Header.Get("HX-Trigger"))

	resp = get(t, client, ts.URL+"/", requestOpts{})
	doc := testutil.ReadDocument(t, resp)
	require.True(t, doc.Find("html").HasClass("theme-dark"))
}

func TestTamperedSessionCookieStartsFresh(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	client := testutil.NewClient(t)

	resp := get(t, client, ts.URL+"/", requestOpts{header: map[string]string{"Cookie": "sheraa_session=forged-value"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var fresh bool
	for _, c := range resp.Cookies() {
		if c.Name == "sheraa_session" && c.Value != "forged-value" {
			fresh = true
		}
	}
	require.True(t, fresh, "a new session cookie is issued")
}

func TestSitemapAndRobots(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/sitemap.xml")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	xml := string(body)
	for _, loc := range []string{
		"<loc>https://sheraa.test/</loc>",
		"<loc>https://sheraa.test/programs/s3-incubator</loc>",
		"<loc>https://sheraa.test/events/sef</loc>",
		"<loc>https://sheraa.test/resources/fundraising-101</loc>",
	} {
		require.Contains(t, xml, loc)
	}
	require.Equal(t, 1, strings.Count(xml, "<loc>https://sheraa.test/events/sef</loc>"))
	require.NotContains(t, xml, "/portal")

	resp, err = http.Get(ts.URL + "/robots.txt")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Contains(t, string(body), "Disallow: /portal")
	require.Contains(t, string(body), "Sitemap: https://sheraa.test/sitemap.xml")
}

func TestNavigationAPI(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/navigation?path=/programs/startup-dojo/&hl=ar", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://partner.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))

	var payload struct {
		Path  string `json:"path"`
		Items []struct {
			ID     string `json:"id"`
			Label  string `json:"label"`
			Active bool   `json:"active"`
		} `json:"items"`
		Breadcrumbs []struct {
			Href string `json:"href"`
		} `json:"breadcrumbs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "/programs/startup-dojo", payload.Path)
	var active []string
	for _, it := range payload.Items {
		if it.Active {
			active = append(active, it.ID)
			require.Equal(t, "البرامج", it.Label)
		}
	}
	require.Equal(t, []string{"programs"}, active)
	require.Len(t, payload.Breadcrumbs, 3)

	resp, err = http.Get(ts.URL + "/api/unknown")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

	req, err = http.NewRequest(http.MethodGet, ts.URL+"/api/navigation?path=/&hl=xx", nil)
	require.NoError(t, err)
	req.Header.Set("X-Cloud-Trace-Context", "105445aa7843bc8bf206b12000100000/1;o=1")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var problem struct {
		Error     string            `json:"error"`
		Fields    map[string]string `json:"fields"`
		RequestID string            `json:"request_id"`
		TraceID   string            `json:"trace_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
	require.Equal(t, "invalid_locale", problem.Error)
	require.Equal(t, map[string]string{"hl": "unsupported"}, problem.Fields)
	require.NotEmpty(t, problem.RequestID)
	require.Equal(t, "105445aa7843bc8bf206b12000100000", problem.TraceID)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))
}

func TestRoutesTable(t *testing.T) {
	t.Parallel()

	seen := map[string]httpserver.Route{}
	for _, rt := range httpserver.Routes() {
		key := rt.Method + " " + rt.Pattern
		_, dup := seen[key]
		require.False(t, dup, key)
		seen[key] = rt
	}
	require.True(t, seen["GET /portal"].Private)
	require.True(t, seen["GET /programs/{slug}"].Sitemap)
	require.False(t, seen["POST /contact"].Sitemap)
	require.Contains(t, seen, "POST /ui/nav")
}
