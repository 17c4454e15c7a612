package navstate

import "fmt"

// OwnerMobileMenu is the scroll-lock owner used by the mobile menu.
const OwnerMobileMenu = "mobile-menu"

// Lock is the persisted scroll-lock state.
type Lock struct {
	Owner string `json:"owner,omitempty"`
}

// ScrollLock is the single shared "body overflow hidden" flag.
type ScrollLock struct {
	owner string
}

// NewScrollLock returns a lock resuming from state.
func NewScrollLock(state Lock) *ScrollLock {
	return &ScrollLock{owner: state.Owner}
}

// Acquire takes the lock for owner. Re-acquiring by the same owner is a no-op.
func (l *ScrollLock) Acquire(owner string) error {
	if l.owner != "" && l.owner != owner {
		return fmt.Errorf("%w by %q", ErrLockHeld, l.owner)
	}
	l.owner = owner
	return nil
}

// Release drops the lock if owner holds it.
func (l *ScrollLock) Release(owner string) bool {
	if l.owner != owner {
		return false
	}
	l.owner = ""
	return true
}

// Reset drops the lock regardless of owner.
func (l *ScrollLock) Reset() { l.owner = "" }

// Held reports whether anyone holds the lock.
func (l *ScrollLock) Held() bool { return l.owner != "" }

// Owner returns the current holder.
func (l *ScrollLock) Owner() string { return l.owner }

// State returns the current snapshot.
func (l *ScrollLock) State() Lock { return Lock{Owner: l.owner} }
