package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAlternates(t *testing.T) {
	alts := BuildAlternates("https://almaradiante.org", "/historia", []string{"es", "en", "de"})
	assert.Equal(t, []Alternate{
		{Href: "https://almaradiante.org/historia", Hreflang: "es"},
		{Href: "https://almaradiante.org/en/historia", Hreflang: "en"},
		{Href: "https://almaradiante.org/de/historia", Hreflang: "de"},
	}, alts)
}

func TestBuildAlternatesRootPath(t *testing.T) {
	alts := BuildAlternates("", "/", []string{"es", "en"})
	assert.Equal(t, []Alternate{
		{Href: "/", Hreflang: "es"},
		{Href: "/en/", Hreflang: "en"},
	}, alts)
}
