package seo

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var site = Site{Name: "Sheraa", BaseURL: "https://sheraa.ae", LogoURL: "https://sheraa.ae/static/logo.svg"}

func TestAbsolute(t *testing.T) {
	require.Equal(t, "https://sheraa.ae/programs", site.Absolute("/programs"))
	require.Equal(t, "https://sheraa.ae/", site.Absolute(""))
	require.Equal(t, "https://cdn.example/x.png", site.Absolute("https://cdn.example/x.png"))
}

func TestPageMeta(t *testing.T) {
	m := site.Page("/about", "About", "Who we are", "ar", []string{"en", "ar"})
	require.Equal(t, "About | Sheraa", m.Title)
	require.Equal(t, "https://sheraa.ae/about", m.Canonical)
	require.Equal(t, "ar_AE", m.OG.Locale)
	require.Len(t, m.Alternates, 2)
	require.Equal(t, "https://sheraa.ae/about?hl=ar", m.Alternates[1].Href)

	home := site.Page("/", "", "", "en", nil)
	require.Equal(t, "Sheraa", home.Title)
}

func TestJSONLDBuilders(t *testing.T) {
	starts := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	ev := Event(EventInfo{Name: "SEF", Location: "Sharjah", Starts: starts, Organizer: "Sheraa"})
	require.Equal(t, "Event", ev["@type"])
	require.Equal(t, "2026-02-01T09:00:00Z", ev["startDate"])

	job := JobPosting(JobInfo{Title: "Program Associate", Description: "<p>Role</p>", Posted: starts, EmploymentType: "FULL_TIME", Location: "Sharjah", Organization: "Sheraa"})
	require.Equal(t, "2026-02-01", job["datePosted"])

	bc := BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "https://sheraa.ae/"}, {Name: "Programs", Item: "https://sheraa.ae/programs"}})
	var decoded struct {
		Items []struct {
			Position int    `json:"position"`
			Name     string `json:"name"`
		} `json:"itemListElement"`
	}
	require.NoError(t, json.Unmarshal([]byte(JSON(bc)), &decoded))
	require.Len(t, decoded.Items, 2)
	require.Equal(t, 2, decoded.Items[1].Position)
}

func TestSitemap(t *testing.T) {
	mod := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	urls := site.Sitemap([]Entry{{Path: "/"}, {Path: "/programs"}, {Path: "/programs/s3-incubator", Modified: mod}, {Path: "/programs"}})
	require.Len(t, urls, 3)
	require.Equal(t, 1.0, urls[0].Priority)
	require.Equal(t, 0.8, urls[1].Priority)
	require.Equal(t, "2026-03-04", urls[2].LastMod)

	var buf bytes.Buffer
	require.NoError(t, WriteSitemap(&buf, urls))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	require.Contains(t, out, "<loc>https://sheraa.ae/programs/s3-incubator</loc>")
}

func TestRobots(t *testing.T) {
	out := site.Robots("/portal", "/api/")
	require.Contains(t, out, "Disallow: /portal\n")
	require.Contains(t, out, "Sitemap: https://sheraa.ae/sitemap.xml")
}
