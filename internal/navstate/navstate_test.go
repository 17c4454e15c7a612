package navstate

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type groupSet map[string]bool

func (g groupSet) HasGroup(id string) bool { return g[id] }

var testGroups = groupSet{"about": true, "programs": true, "community": true}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }
func newClock() *clock                   { return &clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)} }

func TestScrollStickyThreshold(t *testing.T) {
	t.Parallel()

	clk := newClock()
	tr := NewScrollTracker(DefaultConfig(), Scroll{})

	require.True(t, tr.Observe(100, clk.now()))
	require.False(t, tr.State().IsSticky, "offset 100 is not sticky")
	require.True(t, tr.State().IsScrolled)

	clk.advance(100 * time.Millisecond)
	require.True(t, tr.Observe(101, clk.now()))
	require.True(t, tr.State().IsSticky)

	clk.advance(100 * time.Millisecond)
	require.True(t, tr.Observe(5, clk.now()))
	s := tr.State()
	require.False(t, s.IsSticky)
	require.False(t, s.IsScrolled)
	require.True(t, s.IsScrollingUp)
	require.Equal(t, 101, s.Previous)
}

func TestScrollThrottleKeepsState(t *testing.T) {
	t.Parallel()

	clk := newClock()
	tr := NewScrollTracker(DefaultConfig(), Scroll{})
	require.True(t, tr.Observe(300, clk.now()), "first observation is always accepted")
	before := tr.State()

	clk.advance(50 * time.Millisecond)
	require.False(t, tr.Observe(0, clk.now()))
	require.Equal(t, before, tr.State())

	clk.advance(50 * time.Millisecond)
	require.True(t, tr.Observe(0, clk.now()))
	require.True(t, tr.State().IsScrollingUp)
}

func TestScrollNegativeOffsetClamps(t *testing.T) {
	t.Parallel()

	tr := NewScrollTracker(DefaultConfig(), Scroll{})
	tr.Observe(-40, newClock().now())
	require.Equal(t, 0, tr.State().Offset)
	require.False(t, tr.State().IsScrollingUp)
}

func TestDropdownEnterSwitchesGroups(t *testing.T) {
	t.Parallel()

	clk := newClock()
	d := NewDropdown(DefaultConfig(), testGroups, Menu{})

	require.NoError(t, d.Enter("about", clk.now()))
	require.NoError(t, d.Enter("programs", clk.now()))
	open, ok := d.Open(clk.now())
	require.True(t, ok)
	require.Equal(t, "programs", open)
}

func TestDropdownClickToggles(t *testing.T) {
	t.Parallel()

	clk := newClock()
	d := NewDropdown(DefaultConfig(), testGroups, Menu{})

	require.NoError(t, d.Click("about", clk.now()))
	require.Equal(t, "about", d.State().Open)
	require.NoError(t, d.Click("programs", clk.now()))
	require.Equal(t, "programs", d.State().Open)
	require.NoError(t, d.Click("programs", clk.now()))
	_, ok := d.Open(clk.now())
	require.False(t, ok)
}

func TestDropdownLeaveDelay(t *testing.T) {
	t.Parallel()

	clk := newClock()
	d := NewDropdown(DefaultConfig(), testGroups, Menu{})
	require.NoError(t, d.Enter("community", clk.now()))

	d.Leave(clk.now())
	clk.advance(100 * time.Millisecond)
	_, ok := d.Open(clk.now())
	require.True(t, ok, "still open before the deadline")
	require.Equal(t, 50*time.Millisecond, d.Pending(clk.now()))

	require.NoError(t, d.Enter("community", clk.now()))
	clk.advance(time.Second)
	_, ok = d.Open(clk.now())
	require.True(t, ok, "enter cancels the pending close")

	d.Leave(clk.now())
	clk.advance(150 * time.Millisecond)
	_, ok = d.Open(clk.now())
	require.False(t, ok, "closed once the deadline passes")
}

func TestDropdownOutsideAndNavigateClose(t *testing.T) {
	t.Parallel()

	clk := newClock()
	d := NewDropdown(DefaultConfig(), testGroups, Menu{})
	require.NoError(t, d.Enter("about", clk.now()))
	d.OutsideClick()
	require.Empty(t, d.State().Open)

	require.NoError(t, d.Click("about", clk.now()))
	d.Navigate()
	require.Empty(t, d.State().Open)
}

func TestDropdownRejectsUnknownGroup(t *testing.T) {
	t.Parallel()

	clk := newClock()
	d := NewDropdown(DefaultConfig(), testGroups, Menu{})
	require.NoError(t, d.Enter("about", clk.now()))

	err := d.Click("careers", clk.now())
	require.True(t, errors.Is(err, ErrUnknownGroup))
	require.Equal(t, "about", d.State().Open, "state unchanged")
}

func TestDropdownAtMostOneOpen(t *testing.T) {
	t.Parallel()

	clk := newClock()
	d := NewDropdown(DefaultConfig(), testGroups, Menu{})
	rng := rand.New(rand.NewSource(7))
	groups := []string{"about", "programs", "community", "nope"}

	for i := 0; i < 500; i++ {
		g := groups[rng.Intn(len(groups))]
		switch rng.Intn(5) {
		case 0:
			_ = d.Enter(g, clk.now())
		case 1:
			_ = d.Click(g, clk.now())
		case 2:
			d.Leave(clk.now())
		case 3:
			d.OutsideClick()
		case 4:
			clk.advance(time.Duration(rng.Intn(300)) * time.Millisecond)
		}
		open, ok := d.Open(clk.now())
		if ok {
			require.True(t, testGroups.HasGroup(open))
		} else {
			require.Empty(t, open)
		}
	}
}

func TestMobileMenuOwnsScrollLock(t *testing.T) {
	t.Parallel()

	closers := map[string]func(m *MobileMenu){
		"toggle":   func(m *MobileMenu) { require.NoError(t, m.Toggle("/about")) },
		"backdrop": func(m *MobileMenu) { m.Backdrop() },
		"route":    func(m *MobileMenu) { m.RouteChanged("/programs") },
		"unmount":  func(m *MobileMenu) { m.Unmount() },
	}
	for name, closeFn := range closers {
		lock := NewScrollLock(Lock{})
		m := NewMobileMenu(Mobile{}, lock)

		require.NoError(t, m.Toggle("/about"), name)
		require.True(t, m.IsOpen(), name)
		require.True(t, lock.Held(), name)
		require.Equal(t, OwnerMobileMenu, lock.Owner(), name)

		closeFn(m)
		require.False(t, m.IsOpen(), name)
		require.False(t, lock.Held(), name)
	}
}

func TestMobileMenuSameRouteStaysOpen(t *testing.T) {
	t.Parallel()

	m := NewMobileMenu(Mobile{}, NewScrollLock(Lock{}))
	require.NoError(t, m.Toggle("/events"))
	m.RouteChanged("/events")
	require.True(t, m.IsOpen())
}

func TestMobileMenuLockHeldElsewhere(t *testing.T) {
	t.Parallel()

	lock := NewScrollLock(Lock{Owner: "dialog"})
	m := NewMobileMenu(Mobile{}, lock)
	err := m.Toggle("/")
	require.True(t, errors.Is(err, ErrLockHeld))
	require.False(t, m.IsOpen())
	require.Equal(t, "dialog", lock.Owner())

	m.Unmount()
	require.False(t, lock.Held())
}

func TestChromeRestoreRepairsLockInvariant(t *testing.T) {
	t.Parallel()

	c := NewChrome(DefaultConfig(), testGroups)

	c.Restore(State{Mobile: Mobile{Open: true, OpenedOn: "/"}})
	require.True(t, c.Lock.Held())

	c.Restore(State{Lock: Lock{Owner: OwnerMobileMenu}})
	require.False(t, c.Lock.Held())

	c.Restore(State{Menu: Menu{Open: "careers"}})
	require.Empty(t, c.Dropdown.State().Open, "unknown groups are dropped on restore")
}

func TestChromeApplyAndNavigate(t *testing.T) {
	t.Parallel()

	clk := newClock()
	c := NewChrome(DefaultConfig(), testGroups, WithClock(clk.now))

	require.NoError(t, c.Apply(Event{Kind: EventScroll, Offset: 240}))
	require.NoError(t, c.Apply(Event{Kind: EventEnter, Group: "programs"}))
	require.NoError(t, c.Apply(Event{Kind: EventMobileToggle, Path: "/programs/"}))

	v := c.View()
	require.True(t, v.Sticky)
	require.Empty(t, v.OpenGroup, "opening the drawer closes the dropdown")
	require.True(t, v.MobileOpen)
	require.True(t, v.Locked)

	require.NoError(t, c.Apply(Event{Kind: EventClick, Group: "about"}))
	c.Navigate("/about/team")
	v = c.View()
	require.Empty(t, v.OpenGroup)
	require.False(t, v.MobileOpen)
	require.False(t, v.Locked)

	require.True(t, errors.Is(c.Apply(Event{Kind: "wiggle"}), ErrUnknownEvent))
}

func TestChromeMobileToggleBlockedKeepsDropdown(t *testing.T) {
	t.Parallel()

	c := NewChrome(DefaultConfig(), testGroups)
	require.NoError(t, c.Apply(Event{Kind: EventClick, Group: "programs"}))
	require.NoError(t, c.Lock.Acquire("dialog"))

	err := c.Apply(Event{Kind: EventMobileToggle, Path: "/"})
	require.True(t, errors.Is(err, ErrLockHeld))

	v := c.View()
	require.Equal(t, "programs", v.OpenGroup)
	require.False(t, v.MobileOpen)
	require.Equal(t, "dialog", c.Lock.Owner())
}

func TestChromeMountClosesOverlays(t *testing.T) {
	t.Parallel()

	c := NewChrome(DefaultConfig(), testGroups)
	require.NoError(t, c.Apply(Event{Kind: EventScroll, Offset: 240}))
	require.NoError(t, c.Apply(Event{Kind: EventMobileToggle, Path: "/events"}))
	require.True(t, c.View().Locked)

	c.Mount()
	v := c.View()
	require.False(t, v.MobileOpen)
	require.False(t, v.Locked)
	require.Empty(t, v.OpenGroup)
	require.True(t, v.Sticky, "scroll state survives a fresh load")

	// Restoring the persisted snapshot does not bring the drawer back.
	other := NewChrome(DefaultConfig(), testGroups)
	other.Restore(c.Snapshot())
	require.False(t, other.Lock.Held())
}

func TestChromeSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	clk := newClock()
	c := NewChrome(DefaultConfig(), testGroups, WithClock(clk.now))
	require.NoError(t, c.Apply(Event{Kind: EventScroll, Offset: 30}))
	require.NoError(t, c.Apply(Event{Kind: EventClick, Group: "community"}))
	require.NoError(t, c.Apply(Event{Kind: EventLeave}))

	snap := c.Snapshot()
	other := NewChrome(DefaultConfig(), testGroups, WithClock(clk.now))
	other.Restore(snap)
	require.Equal(t, snap, other.Snapshot())

	clk.advance(200 * time.Millisecond)
	require.NoError(t, other.Apply(Event{Kind: EventTick}))
	require.Empty(t, other.View().OpenGroup)
}
