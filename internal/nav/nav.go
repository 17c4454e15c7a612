package nav

import (
	"strings"
)

// MatchMode selects how an item path is compared with the current request path.
type MatchMode string

const (
	// MatchExact highlights an entry only when the normalized paths are equal.
	MatchExact MatchMode = "exact"
	// MatchPrefix also highlights an entry for any path below it on a segment boundary.
	MatchPrefix MatchMode = "prefix"
)

// Item is a top-level navigation entry. Items with sub items open a mega menu.
type Item struct {
	ID       string    `yaml:"id" json:"id"`
	LabelKey string    `yaml:"label" json:"labelKey"`
	Path     string    `yaml:"path" json:"path"`
	Icon     string    `yaml:"icon,omitempty" json:"icon,omitempty"`
	Special  bool      `yaml:"special,omitempty" json:"special,omitempty"`
	Match    MatchMode `yaml:"match,omitempty" json:"match,omitempty"`
	SubItems []SubItem `yaml:"items,omitempty" json:"items,omitempty"`
}

// SubItem is a link inside a mega menu panel.
type SubItem struct {
	LabelKey       string    `yaml:"label" json:"labelKey"`
	Path           string    `yaml:"path" json:"path"`
	DescriptionKey string    `yaml:"description,omitempty" json:"descriptionKey,omitempty"`
	Match          MatchMode `yaml:"match,omitempty" json:"match,omitempty"`
}

// Column groups footer links under a heading.
type Column struct {
	TitleKey string    `yaml:"title" json:"titleKey"`
	Links    []SubItem `yaml:"links" json:"links"`
}

// Menu is the immutable navigation definition for the whole site.
type Menu struct {
	Items  []Item   `yaml:"items" json:"items"`
	Footer []Column `yaml:"footer,omitempty" json:"footer,omitempty"`
}

// HasMenu reports whether the item opens a mega menu panel.
func (it Item) HasMenu() bool { return len(it.SubItems) > 0 }

func (it Item) mode() MatchMode {
	if it.Match != "" {
		return it.Match
	}
	return MatchPrefix
}

func (s SubItem) mode() MatchMode {
	if s.Match != "" {
		return s.Match
	}
	return MatchExact
}

// RenderedItem is a view model for templates and the navigation API.
type RenderedItem struct {
	ID       string            `json:"id"`
	Href     string            `json:"href"`
	LabelKey string            `json:"labelKey"`
	Icon     string            `json:"icon,omitempty"`
	Special  bool              `json:"special,omitempty"`
	Active   bool              `json:"active"`
	Current  bool              `json:"current"`
	SubItems []RenderedSubItem `json:"items,omitempty"`
}

// HasMenu reports whether the rendered item carries a mega menu panel.
func (r RenderedItem) HasMenu() bool { return len(r.SubItems) > 0 }

// RenderedSubItem is a view model for a mega menu link.
type RenderedSubItem struct {
	Href           string `json:"href"`
	LabelKey       string `json:"labelKey"`
	DescriptionKey string `json:"descriptionKey,omitempty"`
	Active         bool   `json:"active"`
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string `json:"href"`
	LabelKey string `json:"labelKey,omitempty"`
	Label    string `json:"label,omitempty"`
	Active   bool   `json:"active"`
}

// NormalizePath trims whitespace and trailing slashes, collapses duplicate
// slashes and maps the empty path to "/".
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
	}
	return p
}

// Matches compares current against target using mode. The root path only
// ever matches itself.
func Matches(current, target string, mode MatchMode) bool {
	current = NormalizePath(current)
	target = NormalizePath(target)
	if current == target {
		return true
	}
	if mode != MatchPrefix || target == "/" {
		return false
	}
	return strings.HasPrefix(current, target+"/")
}

// IsActive reports whether item should be highlighted for currentPath: either
// the item path matches or one of its sub items does.
func IsActive(currentPath string, item Item) bool {
	if Matches(currentPath, item.Path, item.mode()) {
		return true
	}
	for _, sub := range item.SubItems {
		if Matches(currentPath, sub.Path, sub.mode()) {
			return true
		}
	}
	return false
}

// Build renders navigation items with active state given the current path.
func (m *Menu) Build(currentPath string) []RenderedItem {
	current := NormalizePath(currentPath)
	items := make([]RenderedItem, 0, len(m.Items))
	for _, it := range m.Items {
		r := RenderedItem{
			ID:       it.ID,
			Href:     NormalizePath(it.Path),
			LabelKey: it.LabelKey,
			Icon:     it.Icon,
			Special:  it.Special,
			Active:   IsActive(current, it),
			Current:  current == NormalizePath(it.Path),
		}
		for _, sub := range it.SubItems {
			r.SubItems = append(r.SubItems, RenderedSubItem{
				Href:           NormalizePath(sub.Path),
				LabelKey:       sub.LabelKey,
				DescriptionKey: sub.DescriptionKey,
				Active:         Matches(current, sub.Path, sub.mode()),
			})
		}
		items = append(items, r)
	}
	return items
}

// Group returns the item with the given ID when it opens a mega menu.
func (m *Menu) Group(id string) (Item, bool) {
	for _, it := range m.Items {
		if it.ID == id && it.HasMenu() {
			return it, true
		}
	}
	return Item{}, false
}

// HasGroup reports whether id names an item with a mega menu.
func (m *Menu) HasGroup(id string) bool {
	_, ok := m.Group(id)
	return ok
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Home always comes first. Segments that correspond to a navigation entry
// use its label key, the rest use a prettified segment.
func (m *Menu) Breadcrumbs(currentPath string) []Crumb {
	current := NormalizePath(currentPath)
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: current == "/"}}
	if current == "/" {
		return crumbs
	}

	labels := m.labelIndex()
	parts := strings.Split(strings.TrimPrefix(current, "/"), "/")
	href := ""
	for i, part := range parts {
		href += "/" + part
		crumbs = append(crumbs, Crumb{
			Href:     href,
			LabelKey: labels[href],
			Label:    titleFromSegment(part),
			Active:   i == len(parts)-1,
		})
	}
	return crumbs
}

func (m *Menu) labelIndex() map[string]string {
	out := make(map[string]string)
	for _, it := range m.Items {
		out[NormalizePath(it.Path)] = it.LabelKey
		for _, sub := range it.SubItems {
			p := NormalizePath(sub.Path)
			if _, ok := out[p]; !ok {
				out[p] = sub.LabelKey
			}
		}
	}
	return out
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if r[0] >= 'a' && r[0] <= 'z' {
			r[0] -= 'a' - 'A'
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
