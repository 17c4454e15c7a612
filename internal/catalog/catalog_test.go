package catalog

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"sheraa.ae/site/content"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	t.Parallel()

	c, err := Load(content.FS, "data")
	require.NoError(t, err)

	p, err := c.Program("s3-incubator")
	require.NoError(t, err)
	require.Equal(t, "Sheraa Sharjah Startups (S3)", p.Name.In("en"))
	require.NotEmpty(t, p.Name.In("ar"))
	require.Contains(t, c.ProgramSlugs(), "startup-dojo")

	_, err = c.Program("missing")
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = c.Event("sef")
	require.NoError(t, err)
	require.NotEmpty(t, c.Jobs())
	require.NotEmpty(t, c.Sectors())
}

func TestTextFallback(t *testing.T) {
	t.Parallel()

	txt := Text{"en": "Hello"}
	require.Equal(t, "Hello", txt.In("ar"))
	require.Equal(t, "مرحبا", Text{"ar": "مرحبا"}.In("en"))
	require.Equal(t, "", Text{}.In("en"))
}

func TestEventsSplitByNow(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"data/events.yaml": {Data: []byte(`
- slug: later
  starts: 2026-05-01T10:00:00Z
  title: {en: Later}
- slug: earlier
  starts: 2026-01-01T10:00:00Z
  ends: 2026-01-02T10:00:00Z
  title: {en: Earlier}
- slug: earliest
  starts: 2025-06-01T10:00:00Z
  title: {en: Earliest}
`)},
	}
	c, err := Load(fsys, "data")
	require.NoError(t, err)

	upcoming, past := c.Events(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	require.Len(t, upcoming, 2)
	require.Equal(t, "earlier", upcoming[0].Slug, "an event in progress is still upcoming")
	require.Equal(t, "later", upcoming[1].Slug)
	require.Len(t, past, 1)
	require.Equal(t, "earliest", past[0].Slug)
}

func TestStartupsFilterBySector(t *testing.T) {
	t.Parallel()

	c, err := Load(content.FS, "data")
	require.NoError(t, err)
	health := c.Startups("HealthTech")
	require.Len(t, health, 1)
	require.Equal(t, "sanad-health", health[0].Slug)
	require.Len(t, c.Startups(""), 4)
}

func TestLoadRejectsDuplicates(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"data/programs.yaml": {Data: []byte("- {slug: a, name: {en: A}}\n- {slug: a, name: {en: B}}\n")},
	}
	_, err := Load(fsys, "data")
	require.ErrorContains(t, err, "duplicate slug")
}
