package cms

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

// Kinds of content served by the site.
const (
	KindPages     = "pages"
	KindResources = "resources"
)

// Page is a localized markdown document rendered to sanitized HTML.
type Page struct {
	Kind        string
	Slug        string
	Lang        string
	Title       string
	Summary     string
	Category    string
	Tags        []string
	Author      string
	Cover       string
	Body        string
	HTML        string
	Headings    []Heading
	ReadingTime int
	PublishedAt time.Time
	UpdatedAt   time.Time
	SEO         SEO
	Banner      *Banner
}

// Heading is a table-of-contents entry extracted from the rendered HTML.
type Heading struct {
	ID    string
	Text  string
	Level int
}

// SEO holds optional metadata overrides for a page.
type SEO struct {
	Title       string
	Description string
	OGImage     string
}

// Banner models an optional alert displayed above the body.
type Banner struct {
	Variant  string
	Title    string
	Message  string
	LinkText string
	LinkURL  string
}

type frontMatter struct {
	Title       string             `yaml:"title"`
	Summary     string             `yaml:"summary"`
	Lang        string             `yaml:"lang"`
	Category    string             `yaml:"category"`
	Tags        []string           `yaml:"tags"`
	Author      string             `yaml:"author"`
	Cover       string             `yaml:"cover"`
	PublishedAt string             `yaml:"published_at"`
	UpdatedAt   string             `yaml:"updated_at"`
	SEO         frontMatterSEO     `yaml:"seo"`
	Banner      *frontMatterBanner `yaml:"banner"`
}

type frontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

type frontMatterBanner struct {
	Variant  string `yaml:"variant"`
	Title    string `yaml:"title"`
	Message  string `yaml:"message"`
	LinkText string `yaml:"link_text"`
	LinkURL  string `yaml:"link_url"`
}

func clonePage(src Page) Page {
	cp := src
	if src.Banner != nil {
		b := *src.Banner
		cp.Banner = &b
	}
	cp.Tags = append([]string(nil), src.Tags...)
	cp.Headings = append([]Heading(nil), src.Headings...)
	return cp
}
