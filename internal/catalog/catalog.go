package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a catalog record cannot be located.
var ErrNotFound = errors.New("catalog: not found")

// Text is a localized string keyed by language code.
type Text map[string]string

// In returns the text for lang, then English, then any value.
func (t Text) In(lang string) string {
	if v := t[lang]; v != "" {
		return v
	}
	if v := t["en"]; v != "" {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// Program is an incubation or acceleration program.
type Program struct {
	Slug     string    `yaml:"slug"`
	Name     Text      `yaml:"name"`
	Tagline  Text      `yaml:"tagline"`
	Summary  Text      `yaml:"summary"`
	Duration Text      `yaml:"duration"`
	Stage    string    `yaml:"stage"`
	Icon     string    `yaml:"icon"`
	Benefits []Text    `yaml:"benefits"`
	Open     bool      `yaml:"open"`
	Deadline time.Time `yaml:"deadline"`
}

// Startup is a company in the community showcase.
type Startup struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Sector      string `yaml:"sector"`
	Founded     int    `yaml:"founded"`
	Program     string `yaml:"program"`
	Website     string `yaml:"website"`
	Logo        string `yaml:"logo"`
	Description Text   `yaml:"description"`
}

// Testimonial is a founder quote.
type Testimonial struct {
	Quote   Text   `yaml:"quote"`
	Author  string `yaml:"author"`
	Role    Text   `yaml:"role"`
	Company string `yaml:"company"`
}

// Event is a scheduled gathering.
type Event struct {
	Slug     string    `yaml:"slug"`
	Title    Text      `yaml:"title"`
	Summary  Text      `yaml:"summary"`
	Location Text      `yaml:"location"`
	Starts   time.Time `yaml:"starts"`
	Ends     time.Time `yaml:"ends"`
	URL      string    `yaml:"url"`
	Featured bool      `yaml:"featured"`
}

// Partner is a supporting organisation.
type Partner struct {
	Name string `yaml:"name"`
	Tier string `yaml:"tier"`
	Logo string `yaml:"logo"`
	URL  string `yaml:"url"`
}

// TeamMember is a staff profile.
type TeamMember struct {
	Name  string `yaml:"name"`
	Role  Text   `yaml:"role"`
	Group string `yaml:"group"`
	Photo string `yaml:"photo"`
	Bio   Text   `yaml:"bio"`
}

// Mentor is a community advisor.
type Mentor struct {
	Name      string `yaml:"name"`
	Company   string `yaml:"company"`
	Expertise Text   `yaml:"expertise"`
	Photo     string `yaml:"photo"`
}

// Job is an open position.
type Job struct {
	Slug        string    `yaml:"slug" json:"slug"`
	Title       Text      `yaml:"title" json:"title"`
	Department  string    `yaml:"department" json:"department"`
	Location    string    `yaml:"location" json:"location"`
	Type        string    `yaml:"type" json:"type"`
	Description Text      `yaml:"description" json:"description"`
	Posted      time.Time `yaml:"posted" json:"posted"`
	ApplyURL    string    `yaml:"apply_url" json:"applyUrl"`
}

// Catalog is the immutable set of display records.
type Catalog struct {
	programs     []Program
	startups     []Startup
	testimonials []Testimonial
	events       []Event
	partners     []Partner
	team         []TeamMember
	mentors      []Mentor
	jobs         []Job
}

// Load reads every data file from dir inside fsys.
func Load(fsys fs.FS, dir string) (*Catalog, error) {
	c := &Catalog{}
	files := []struct {
		name string
		dst  any
	}{
		{"programs.yaml", &c.programs},
		{"startups.yaml", &c.startups},
		{"testimonials.yaml", &c.testimonials},
		{"events.yaml", &c.events},
		{"partners.yaml", &c.partners},
		{"team.yaml", &c.team},
		{"mentors.yaml", &c.mentors},
		{"jobs.yaml", &c.jobs},
	}
	for _, f := range files {
		raw, err := fs.ReadFile(fsys, path.Join(dir, f.name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("catalog: read %s: %w", f.name, err)
		}
		if err := yaml.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("catalog: parse %s: %w", f.name, err)
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	sort.SliceStable(c.events, func(i, j int) bool { return c.events[i].Starts.Before(c.events[j].Starts) })
	sort.SliceStable(c.jobs, func(i, j int) bool { return c.jobs[i].Posted.After(c.jobs[j].Posted) })
	return c, nil
}

func (c *Catalog) validate() error {
	var problems []string
	check := func(kind string, slugs []string) {
		seen := map[string]struct{}{}
		for i, s := range slugs {
			if strings.TrimSpace(s) == "" {
				problems = append(problems, fmt.Sprintf("%s[%d]: missing slug", kind, i))
				continue
			}
			if _, dup := seen[s]; dup {
				problems = append(problems, fmt.Sprintf("%s: duplicate slug %q", kind, s))
			}
			seen[s] = struct{}{}
		}
	}
	check("programs", mapSlugs(c.programs, func(p Program) string { return p.Slug }))
	check("startups", mapSlugs(c.startups, func(s Startup) string { return s.Slug }))
	check("events", mapSlugs(c.events, func(e Event) string { return e.Slug }))
	check("jobs", mapSlugs(c.jobs, func(j Job) string { return j.Slug }))
	for _, p := range c.programs {
		if p.Name.In("en") == "" {
			problems = append(problems, fmt.Sprintf("programs: %s has no name", p.Slug))
		}
	}
	for _, e := range c.events {
		if !e.Ends.IsZero() && e.Ends.Before(e.Starts) {
			problems = append(problems, fmt.Sprintf("events: %s ends before it starts", e.Slug))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("catalog: invalid data: %s", strings.Join(problems, "; "))
	}
	return nil
}

func mapSlugs[T any](in []T, fn func(T) string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

// Programs returns all programs in file order.
func (c *Catalog) Programs() []Program { return slices.Clone(c.programs) }

// Program returns the program with slug.
func (c *Catalog) Program(slug string) (Program, error) {
	for _, p := range c.programs {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Program{}, fmt.Errorf("%w: program %q", ErrNotFound, slug)
}

// ProgramSlugs lists every program slug.
func (c *Catalog) ProgramSlugs() []string {
	return mapSlugs(c.programs, func(p Program) string { return p.Slug })
}

// Startups returns showcase companies, filtered by sector when non-empty.
func (c *Catalog) Startups(sector string) []Startup {
	if sector == "" {
		return slices.Clone(c.startups)
	}
	var out []Startup
	for _, s := range c.startups {
		if strings.EqualFold(s.Sector, sector) {
			out = append(out, s)
		}
	}
	return out
}

// Sectors lists distinct startup sectors in sorted order.
func (c *Catalog) Sectors() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, s := range c.startups {
		if _, ok := seen[s.Sector]; ok || s.Sector == "" {
			continue
		}
		seen[s.Sector] = struct{}{}
		out = append(out, s.Sector)
	}
	sort.Strings(out)
	return out
}

// Testimonials returns all founder quotes.
func (c *Catalog) Testimonials() []Testimonial { return slices.Clone(c.testimonials) }

// Events splits events into upcoming (ascending) and past (most recent first)
// relative to now.
func (c *Catalog) Events(now time.Time) (upcoming, past []Event) {
	for _, e := range c.events {
		end := e.Ends
		if end.IsZero() {
			end = e.Starts
		}
		if end.Before(now) {
			past = append(past, e)
		} else {
			upcoming = append(upcoming, e)
		}
	}
	slices.Reverse(past)
	return upcoming, past
}

// Event returns the event with slug.
func (c *Catalog) Event(slug string) (Event, error) {
	for _, e := range c.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return Event{}, fmt.Errorf("%w: event %q", ErrNotFound, slug)
}

// AllEvents returns every event in start order.
func (c *Catalog) AllEvents() []Event { return slices.Clone(c.events) }

// Partners returns partner organisations.
func (c *Catalog) Partners() []Partner { return slices.Clone(c.partners) }

// Team returns staff profiles.
func (c *Catalog) Team() []TeamMember { return slices.Clone(c.team) }

// Mentors returns community advisors.
func (c *Catalog) Mentors() []Mentor { return slices.Clone(c.mentors) }

// Jobs returns open positions, newest first.
func (c *Catalog) Jobs() []Job { return slices.Clone(c.jobs) }
