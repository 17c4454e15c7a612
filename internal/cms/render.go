package cms

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

const wordsPerMinute = 200

// Renderer turns markdown into sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds a GFM renderer with automatic heading IDs.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	return &Renderer{md: md, policy: newContentPolicy()}
}

func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "code")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// Render converts markdown to sanitized HTML.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("cms: render markdown: %w", err)
	}
	return r.policy.SanitizeReader(&buf).String(), nil
}

// Sanitize cleans HTML received from the remote CMS.
func (r *Renderer) Sanitize(src string) string {
	return r.policy.Sanitize(src)
}

// parse reads front matter and body into a rendered Page.
func (r *Renderer) parse(kind, slug, lang, raw string) (Page, error) {
	fm, body := splitFrontMatter(raw)
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("cms: parse front matter %s/%s/%s: %w", kind, lang, slug, err)
		}
	}
	rendered, err := r.Render(body)
	if err != nil {
		return Page{}, err
	}
	page := Page{
		Kind:        kind,
		Slug:        slug,
		Lang:        firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:       strings.TrimSpace(front.Title),
		Summary:     strings.TrimSpace(front.Summary),
		Category:    strings.TrimSpace(front.Category),
		Tags:        front.Tags,
		Author:      strings.TrimSpace(front.Author),
		Cover:       strings.TrimSpace(front.Cover),
		Body:        body,
		HTML:        rendered,
		Headings:    extractHeadings(rendered),
		ReadingTime: readingTime(body),
		PublishedAt: parseDate(front.PublishedAt),
		UpdatedAt:   parseDate(front.UpdatedAt),
		SEO: SEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
	}
	if front.Banner != nil {
		page.Banner = &Banner{
			Variant:  strings.TrimSpace(front.Banner.Variant),
			Title:    strings.TrimSpace(front.Banner.Title),
			Message:  strings.TrimSpace(front.Banner.Message),
			LinkText: strings.TrimSpace(front.Banner.LinkText),
			LinkURL:  strings.TrimSpace(front.Banner.LinkURL),
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	if page.UpdatedAt.IsZero() {
		page.UpdatedAt = page.PublishedAt
	}
	return page, nil
}

// extractHeadings collects h2 and h3 elements carrying an id.
func extractHeadings(fragment string) []Heading {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil
	}
	var out []Heading
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "h2" || n.Data == "h3") {
			id := attr(n, "id")
			if id != "" {
				out = append(out, Heading{ID: id, Text: strings.TrimSpace(textContent(n)), Level: int(n.Data[1] - '0')})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func readingTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return max(minutes, 1)
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		if r >= 'a' && r <= 'z' {
			parts[i] = string(r-('a'-'A')) + part[size:]
		}
	}
	return strings.Join(parts, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
