package seo

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// Entry is a site path with an optional modification time.
type Entry struct {
	Path     string
	Modified time.Time
}

// Sitemap resolves entries against the site base URL. The home page gets
// priority 1.0, top-level sections 0.8, everything else 0.6.
func (s Site) Sitemap(entries []Entry) []SitemapURL {
	seen := make(map[string]struct{}, len(entries))
	out := make([]SitemapURL, 0, len(entries))
	for _, e := range entries {
		loc := s.Absolute(e.Path)
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		u := SitemapURL{Loc: loc, ChangeFreq: "weekly", Priority: priority(e.Path)}
		if !e.Modified.IsZero() {
			u.LastMod = e.Modified.UTC().Format("2006-01-02")
		}
		out = append(out, u)
	}
	return out
}

func priority(path string) float64 {
	trimmed := strings.Trim(path, "/")
	switch {
	case trimmed == "":
		return 1.0
	case !strings.Contains(trimmed, "/"):
		return 0.8
	default:
		return 0.6
	}
}

// WriteSitemap encodes urls as a sitemap.xml document.
func WriteSitemap(w io.Writer, urls []SitemapURL) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(urlSet{XMLNS: sitemapNS, URLs: urls}); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	return enc.Flush()
}

// Robots renders robots.txt. Disallowed paths are never crawled.
func (s Site) Robots(disallow ...string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	if len(disallow) == 0 {
		b.WriteString("Allow: /\n")
	}
	for _, p := range disallow {
		fmt.Fprintf(&b, "Disallow: %s\n", p)
	}
	fmt.Fprintf(&b, "\nSitemap: %s\n", s.Absolute("/sitemap.xml"))
	return b.String()
}
