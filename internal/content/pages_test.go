package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, lang, slug, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, lang), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, lang, slug+".md"), []byte(body), 0o644))
}

const storyMD = `---
title: Nuestra historia
summary: De una búsqueda personal.
---

Un párrafo con **énfasis** y un [enlace](https://example.org).

<script>alert("x")</script>
`

func TestGetRendersMarkdownWithFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "es", "historia", storyMD)
	ps := NewPageStore(dir, nil)

	page, err := ps.Get("historia", "es")
	require.NoError(t, err)
	assert.Equal(t, "historia", page.Slug)
	assert.Equal(t, "es", page.Lang)
	assert.Equal(t, "Nuestra historia", page.Title)
	assert.Equal(t, "De una búsqueda personal.", page.Summary)

	body := string(page.Body)
	assert.Contains(t, body, "<strong>énfasis</strong>")
	assert.Contains(t, body, `href="https://example.org"`)
	assert.NotContains(t, body, "<script>", "raw scripts must be sanitized away")
}

func TestGetFallsBackToPrimaryLanguage(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "es", "historia", storyMD)
	ps := NewPageStore(dir, nil)

	page, err := ps.Get("historia", "de")
	require.NoError(t, err)
	assert.Equal(t, "es", page.Lang)
}

func TestGetUnknownSlug(t *testing.T) {
	ps := NewPageStore(t.TempDir(), nil)
	_, err := ps.Get("nope", "es")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestGetRejectsTraversal(t *testing.T) {
	ps := NewPageStore(t.TempDir(), nil)
	for _, slug := range []string{"", "../secret", "a/../../b", string(os.PathSeparator) + "etc"} {
		_, err := ps.Get(slug, "es")
		assert.ErrorIs(t, err, ErrPageNotFound, "slug %q", slug)
	}
}

func TestGetWithoutFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "es", "guia-de-bienvenida", "Solo cuerpo.\n")
	ps := NewPageStore(dir, nil)

	page, err := ps.Get("guia-de-bienvenida", "es")
	require.NoError(t, err)
	assert.Equal(t, "Guia De Bienvenida", page.Title, "title falls back to the prettified slug")
	assert.Contains(t, string(page.Body), "Solo cuerpo.")
}

func TestCacheServesStaleUntilExpiry(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "es", "historia", storyMD)
	ps := NewPageStore(dir, nil)
	ps.SetCacheDuration(time.Hour)

	first, err := ps.Get("historia", "es")
	require.NoError(t, err)

	writePage(t, dir, "es", "historia", strings.Replace(storyMD, "Nuestra historia", "Cambiada", 1))
	second, err := ps.Get("historia", "es")
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title, "within the TTL the cached page wins")
}
