package nav

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidMenu indicates a navigation definition that cannot be served.
var ErrInvalidMenu = errors.New("nav: invalid menu")

// Parse decodes a YAML navigation definition and validates it.
func Parse(data []byte) (*Menu, error) {
	var m Menu
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMenu, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads name from fsys and parses it.
func Load(fsys fs.FS, name string) (*Menu, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read navigation %s: %w", name, err)
	}
	return Parse(data)
}

// LoadFile reads a navigation definition from disk.
func LoadFile(path string) (*Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read navigation %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks IDs, paths and match modes.
func (m *Menu) Validate() error {
	if len(m.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidMenu)
	}
	seen := make(map[string]struct{}, len(m.Items))
	for i, it := range m.Items {
		if strings.TrimSpace(it.ID) == "" {
			return fmt.Errorf("%w: item %d has no id", ErrInvalidMenu, i)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidMenu, it.ID)
		}
		seen[it.ID] = struct{}{}
		if err := checkEntry(it.ID, it.LabelKey, it.Path, it.Match); err != nil {
			return err
		}
		for _, sub := range it.SubItems {
			if err := checkEntry(it.ID, sub.LabelKey, sub.Path, sub.Match); err != nil {
				return err
			}
		}
	}
	for _, col := range m.Footer {
		for _, link := range col.Links {
			if err := checkEntry(col.TitleKey, link.LabelKey, link.Path, link.Match); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkEntry(owner, label, path string, mode MatchMode) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("%w: %s: entry %q has no label", ErrInvalidMenu, owner, path)
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %s: path %q must be absolute", ErrInvalidMenu, owner, path)
	}
	switch mode {
	case "", MatchExact, MatchPrefix:
	default:
		return fmt.Errorf("%w: %s: unknown match mode %q", ErrInvalidMenu, owner, mode)
	}
	return nil
}
