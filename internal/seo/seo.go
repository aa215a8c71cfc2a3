package seo

import "almaradiante.org/alma-web/internal/i18n"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
}

// Alternate is a hreflang link for one localized variant of the page.
type Alternate struct {
	Href     string
	Hreflang string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Alternates  []Alternate
}

// BuildAlternates produces hreflang links for every loaded language. The
// primary language lives at the bare path; the others under their prefix.
func BuildAlternates(baseURL, path string, langs []string) []Alternate {
	out := make([]Alternate, 0, len(langs))
	for _, lang := range langs {
		href := baseURL + path
		if lang != i18n.LangPrimary {
			href = baseURL + "/" + lang + path
		}
		out = append(out, Alternate{Href: href, Hreflang: lang})
	}
	return out
}
