package seo

import (
	"net/url"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is a localized variant of the current page.
type Alternate struct {
	Lang string
	Href string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	NoIndex     bool
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []map[string]any
}

// Site holds the defaults every page's meta falls back to.
type Site struct {
	Name    string
	BaseURL string
	LogoURL string
}

// Absolute resolves path against the site base URL.
func (s Site) Absolute(path string) string {
	if path == "" {
		path = "/"
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base, err := url.Parse(s.BaseURL)
	if err != nil || base.Host == "" {
		return path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return base.ResolveReference(ref).String()
}

// Page builds Meta for a page at path, filling OpenGraph and Twitter from
// title and description. Alternates get one entry per lang using ?hl=.
func (s Site) Page(path, title, description, lang string, langs []string) Meta {
	full := title
	switch {
	case title == "":
		full = s.Name
	case s.Name != "" && title != s.Name:
		full = title + " | " + s.Name
	}
	canonical := s.Absolute(path)
	m := Meta{
		Title:       full,
		Description: description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       full,
			Description: description,
			Image:       s.LogoURL,
			Type:        "website",
			URL:         canonical,
			Locale:      ogLocale(lang),
		},
		Twitter: Twitter{Card: "summary_large_image", Image: s.LogoURL},
	}
	for _, l := range langs {
		m.Alternates = append(m.Alternates, Alternate{Lang: l, Href: canonical + "?hl=" + url.QueryEscape(l)})
	}
	return m
}

// With appends JSON-LD payloads.
func (m Meta) With(ld ...map[string]any) Meta {
	for _, v := range ld {
		if v != nil {
			m.JSONLD = append(m.JSONLD, v)
		}
	}
	return m
}

func ogLocale(lang string) string {
	switch lang {
	case "ar":
		return "ar_AE"
	case "":
		return ""
	default:
		return "en_US"
	}
}
