package navstate

import (
	"fmt"
	"time"
)

// Menu is the dropdown state. An empty Open means closed. A non-zero CloseAt
// is a pending close scheduled by a pointer leave.
type Menu struct {
	Open    string    `json:"open,omitempty"`
	CloseAt time.Time `json:"closeAt"`
}

// Dropdown keeps at most one mega menu group open.
type Dropdown struct {
	cfg    Config
	groups GroupSet
	state  Menu
}

// NewDropdown returns a controller resuming from state.
func NewDropdown(cfg Config, groups GroupSet, state Menu) *Dropdown {
	if state.Open == "" {
		state.CloseAt = time.Time{}
	}
	return &Dropdown{cfg: cfg, groups: groups, state: state}
}

func (d *Dropdown) check(group string) error {
	if d.groups == nil || !d.groups.HasGroup(group) {
		return fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}
	return nil
}

// expire applies a pending close whose deadline has passed.
func (d *Dropdown) expire(now time.Time) {
	if d.state.Open != "" && !d.state.CloseAt.IsZero() && !now.Before(d.state.CloseAt) {
		d.state = Menu{}
	}
}

// Enter opens group on hover and cancels any pending close.
func (d *Dropdown) Enter(group string, now time.Time) error {
	if err := d.check(group); err != nil {
		return err
	}
	d.expire(now)
	d.state = Menu{Open: group}
	return nil
}

// Click opens group, or closes it when it is already the open one.
func (d *Dropdown) Click(group string, now time.Time) error {
	if err := d.check(group); err != nil {
		return err
	}
	d.expire(now)
	if d.state.Open == group {
		d.state = Menu{}
		return nil
	}
	d.state = Menu{Open: group}
	return nil
}

// Leave schedules a close after the configured delay. An already pending
// deadline is kept.
func (d *Dropdown) Leave(now time.Time) {
	d.expire(now)
	if d.state.Open == "" || !d.state.CloseAt.IsZero() {
		return
	}
	d.state.CloseAt = now.Add(d.cfg.CloseDelay)
}

// OutsideClick closes immediately.
func (d *Dropdown) OutsideClick() { d.state = Menu{} }

// Navigate closes immediately.
func (d *Dropdown) Navigate() { d.state = Menu{} }

// Open reports the group open at now, applying an elapsed close deadline.
func (d *Dropdown) Open(now time.Time) (string, bool) {
	d.expire(now)
	return d.state.Open, d.state.Open != ""
}

// Pending returns the time left before a scheduled close, or zero.
func (d *Dropdown) Pending(now time.Time) time.Duration {
	d.expire(now)
	if d.state.Open == "" || d.state.CloseAt.IsZero() {
		return 0
	}
	return d.state.CloseAt.Sub(now)
}

// State returns the current snapshot.
func (d *Dropdown) State() Menu { return d.state }
