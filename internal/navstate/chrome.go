package navstate

import (
	"fmt"
	"time"

	"sheraa.ae/site/internal/nav"
)

// EventKind names a UI event posted by the header.
type EventKind string

const (
	EventScroll       EventKind = "scroll"
	EventEnter        EventKind = "enter"
	EventClick        EventKind = "click"
	EventLeave        EventKind = "leave"
	EventOutside      EventKind = "outside"
	EventTick         EventKind = "tick"
	EventMobileToggle EventKind = "mobile-toggle"
	EventBackdrop     EventKind = "backdrop"
	EventNavigate     EventKind = "navigate"
)

// Event is one UI event applied to the chrome.
type Event struct {
	Kind   EventKind
	Group  string
	Offset int
	Path   string
}

// View is what templates need to render the header for one response.
type View struct {
	Sticky       bool
	Scrolled     bool
	ScrollingUp  bool
	OpenGroup    string
	ClosePending time.Duration
	MobileOpen   bool
	Locked       bool
}

// Option customises a Chrome.
type Option func(*Chrome)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Chrome) {
		if now != nil {
			c.now = now
		}
	}
}

// Chrome bundles the state machines of one visitor.
type Chrome struct {
	cfg    Config
	groups GroupSet
	now    func() time.Time

	Scroll   *ScrollTracker
	Dropdown *Dropdown
	Mobile   *MobileMenu
	Lock     *ScrollLock
}

// NewChrome returns a chrome in its initial state.
func NewChrome(cfg Config, groups GroupSet, opts ...Option) *Chrome {
	c := &Chrome{cfg: cfg, groups: groups, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.Restore(State{})
	return c
}

// Restore replaces the current state with s.
func (c *Chrome) Restore(s State) {
	c.Lock = NewScrollLock(s.Lock)
	c.Scroll = NewScrollTracker(c.cfg, s.Scroll)
	c.Dropdown = NewDropdown(c.cfg, c.groups, s.Menu)
	if s.Menu.Open != "" && (c.groups == nil || !c.groups.HasGroup(s.Menu.Open)) {
		c.Dropdown.OutsideClick()
	}
	c.Mobile = NewMobileMenu(s.Mobile, c.Lock)
}

// Snapshot returns the state to persist.
func (c *Chrome) Snapshot() State {
	return State{
		Scroll: c.Scroll.State(),
		Menu:   c.Dropdown.State(),
		Mobile: c.Mobile.State(),
		Lock:   c.Lock.State(),
	}
}

// Navigate closes overlays that must not survive a route change.
func (c *Chrome) Navigate(path string) {
	c.Dropdown.Navigate()
	c.Mobile.RouteChanged(nav.NormalizePath(path))
}

// Mount resets the overlays for a freshly loaded document. Scroll state is
// kept so the header renders in place.
func (c *Chrome) Mount() {
	c.Dropdown.Navigate()
	c.Mobile.Unmount()
}

// Apply dispatches ev to the matching state machine.
func (c *Chrome) Apply(ev Event) error {
	now := c.now()
	switch ev.Kind {
	case EventScroll:
		c.Scroll.Observe(ev.Offset, now)
	case EventEnter:
		return c.Dropdown.Enter(ev.Group, now)
	case EventClick:
		return c.Dropdown.Click(ev.Group, now)
	case EventLeave:
		c.Dropdown.Leave(now)
	case EventOutside:
		c.Dropdown.OutsideClick()
	case EventTick:
		c.Dropdown.Open(now)
	case EventMobileToggle:
		if err := c.Mobile.Toggle(nav.NormalizePath(ev.Path)); err != nil {
			return err
		}
		c.Dropdown.OutsideClick()
		return nil
	case EventBackdrop:
		c.Mobile.Backdrop()
	case EventNavigate:
		c.Navigate(ev.Path)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
	return nil
}

// View resolves the state at the current instant.
func (c *Chrome) View() View {
	now := c.now()
	open, _ := c.Dropdown.Open(now)
	s := c.Scroll.State()
	return View{
		Sticky:       s.IsSticky,
		Scrolled:     s.IsScrolled,
		ScrollingUp:  s.IsScrollingUp,
		OpenGroup:    open,
		ClosePending: c.Dropdown.Pending(now),
		MobileOpen:   c.Mobile.IsOpen(),
		Locked:       c.Lock.Held(),
	}
}
