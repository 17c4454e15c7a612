package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
)

// Bundle holds flat key/value dictionaries per supported language.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported []string
	matcher   language.Matcher
}

// Load reads <dir>/<lang>.json from fsys for every supported language. Only
// the fallback bundle is required.
func Load(fsys fs.FS, dir, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{"en", "ar"}
	}
	b := &Bundle{
		dict:     map[string]map[string]string{},
		fallback: fallback,
	}
	tags := make([]language.Tag, 0, len(supported))
	// The matcher returns the first tag when nothing fits, so the fallback leads.
	ordered := append([]string{fallback}, supported...)
	seen := map[string]struct{}{}
	for _, l := range ordered {
		l = strings.ToLower(strings.TrimSpace(l))
		if _, dup := seen[l]; dup || l == "" {
			continue
		}
		seen[l] = struct{}{}

		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", l, err)
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, l+".json"))
		if err != nil {
			if l == fallback || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
		b.supported = append(b.supported, l)
		tags = append(tags, tag)
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

// Supported lists the loaded languages, fallback first.
func (b *Bundle) Supported() []string {
	out := make([]string, len(b.supported))
	copy(out, b.supported)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang has a loaded dictionary.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.dict[strings.ToLower(lang)]
	return ok
}

// T returns translation for key in lang, falling back to default and finally key.
func (b *Bundle) T(lang, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// Tf formats the translation of key with args.
func (b *Bundle) Tf(lang, key string, args ...any) string {
	return fmt.Sprintf(b.T(lang, key), args...)
}

// Has reports whether key exists in any loaded dictionary.
func (b *Bundle) Has(key string) bool {
	for _, m := range b.dict {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// Missing lists keys present in the fallback dictionary but absent from lang.
func (b *Bundle) Missing(lang string) []string {
	var out []string
	target := b.dict[lang]
	for k := range b.dict[b.fallback] {
		if _, ok := target[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// Resolve chooses the best supported language for an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.fallback
	}
	return b.supported[idx]
}

// Normalize maps a user supplied code such as "AR-ae" to a supported language.
func (b *Bundle) Normalize(lang string) (string, bool) {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	code := base.String()
	if !b.IsSupported(code) {
		return "", false
	}
	return code, true
}

// Dir returns the text direction for lang.
func Dir(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return "ltr"
	}
	base, _ := tag.Base()
	switch base.String() {
	case "ar", "fa", "he", "ur":
		return "rtl"
	}
	return "ltr"
}
