// Package navstate holds the navigation chrome state machines: the scroll
// tracker, the mega menu dropdown, the mobile menu and the body scroll-lock.
// Every visitor owns one State, persisted in the session between requests.
package navstate

import (
	"errors"
	"time"
)

var (
	// ErrUnknownGroup is returned when a dropdown event names an item that has no mega menu.
	ErrUnknownGroup = errors.New("navstate: unknown group")
	// ErrLockHeld is returned when the scroll-lock is owned by someone else.
	ErrLockHeld = errors.New("navstate: scroll lock held")
	// ErrUnknownEvent is returned by Chrome.Apply for unsupported event kinds.
	ErrUnknownEvent = errors.New("navstate: unknown event")
)

// Config tunes thresholds and delays.
type Config struct {
	StickyOffset   int
	ScrolledOffset int
	Throttle       time.Duration
	CloseDelay     time.Duration
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		StickyOffset:   100,
		ScrolledOffset: 10,
		Throttle:       100 * time.Millisecond,
		CloseDelay:     150 * time.Millisecond,
	}
}

// GroupSet answers whether an ID names a navigation item with a mega menu.
type GroupSet interface {
	HasGroup(id string) bool
}

// State is the persisted snapshot of the whole chrome.
type State struct {
	Scroll Scroll `json:"scroll"`
	Menu   Menu   `json:"menu"`
	Mobile Mobile `json:"mobile"`
	Lock   Lock   `json:"lock"`
}
