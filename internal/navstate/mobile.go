package navstate

// Mobile is the mobile menu state.
type Mobile struct {
	Open     bool   `json:"open,omitempty"`
	OpenedOn string `json:"on,omitempty"`
}

// MobileMenu toggles the mobile drawer and owns the scroll-lock while open.
type MobileMenu struct {
	state Mobile
	lock  *ScrollLock
}

// NewMobileMenu returns a controller resuming from state and repairs the lock
// so that it is held exactly while the menu is open.
func NewMobileMenu(state Mobile, lock *ScrollLock) *MobileMenu {
	m := &MobileMenu{state: state, lock: lock}
	if state.Open {
		if err := lock.Acquire(OwnerMobileMenu); err != nil {
			m.state = Mobile{}
		}
	} else {
		lock.Release(OwnerMobileMenu)
	}
	return m
}

// Toggle opens the menu on path or closes it.
func (m *MobileMenu) Toggle(path string) error {
	if m.state.Open {
		m.close()
		return nil
	}
	if err := m.lock.Acquire(OwnerMobileMenu); err != nil {
		return err
	}
	m.state = Mobile{Open: true, OpenedOn: path}
	return nil
}

// Backdrop closes the menu.
func (m *MobileMenu) Backdrop() { m.close() }

// RouteChanged closes the menu when path differs from the one it was opened on.
func (m *MobileMenu) RouteChanged(path string) {
	if m.state.Open && path != m.state.OpenedOn {
		m.close()
	}
}

// Unmount closes the menu and releases the lock whoever holds it.
func (m *MobileMenu) Unmount() {
	m.state = Mobile{}
	m.lock.Reset()
}

// IsOpen reports whether the drawer is open.
func (m *MobileMenu) IsOpen() bool { return m.state.Open }

// State returns the current snapshot.
func (m *MobileMenu) State() Mobile { return m.state }

func (m *MobileMenu) close() {
	m.state = Mobile{}
	m.lock.Release(OwnerMobileMenu)
}
