package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"sheraa.ae/site/content"
)

func testBundle(t *testing.T) *Bundle {
	t.Helper()

	fsys := fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"nav.home":"Home","form.min":"At least %d characters","only.en":"English"}`)},
		"locales/ar.json": {Data: []byte(`{"nav.home":"الرئيسية","form.min":"%d أحرف على الأقل"}`)},
	}
	b, err := Load(fsys, "locales", "en", []string{"en", "ar"})
	require.NoError(t, err)
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	t.Parallel()

	b := testBundle(t)
	require.Equal(t, "ar", b.Resolve("en;q=0.8, ar-AE;q=0.9"))
	require.Equal(t, "en", b.Resolve("fr-FR, de;q=0.5"), "unsupported falls back")
	require.Equal(t, "en", b.Resolve(""))
	require.Equal(t, "ar", b.Resolve("ar"))
}

func TestTranslateFallsBack(t *testing.T) {
	t.Parallel()

	b := testBundle(t)
	require.Equal(t, "الرئيسية", b.T("ar", "nav.home"))
	require.Equal(t, "English", b.T("ar", "only.en"))
	require.Equal(t, "missing.key", b.T("ar", "missing.key"))
	require.Equal(t, "At least 2 characters", b.Tf("en", "form.min", 2))
	require.Equal(t, []string{"only.en"}, b.Missing("ar"))
}

func TestNormalizeAndDir(t *testing.T) {
	t.Parallel()

	b := testBundle(t)
	code, ok := b.Normalize("AR-ae")
	require.True(t, ok)
	require.Equal(t, "ar", code)
	_, ok = b.Normalize("fr")
	require.False(t, ok)

	require.Equal(t, "rtl", Dir("ar"))
	require.Equal(t, "ltr", Dir("en"))
	require.Equal(t, "ltr", Dir("??"))
}

func TestEmbeddedLocalesAreComplete(t *testing.T) {
	t.Parallel()

	b, err := Load(content.FS, "locales", "en", []string{"en", "ar"})
	require.NoError(t, err)
	require.Empty(t, b.Missing("ar"), "every English key needs an Arabic translation")
}
