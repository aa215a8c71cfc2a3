package handlers

import (
	"almaradiante.org/alma-web/internal/content"
	"almaradiante.org/alma-web/internal/nav"
	"almaradiante.org/alma-web/internal/seo"
	"almaradiante.org/alma-web/internal/siteconfig"
)

// PageData is the generic view model for pages using the shared layout.
type PageData struct {
	Title string
	Lang  string
	SEO   seo.Meta

	Path string
	Nav  []nav.RenderedItem

	// Bound translation slots for the active language.
	Content content.PageContent

	// Site configuration surfaced to the layout.
	Theme      siteconfig.Theme
	Features   siteconfig.Features
	BookingURL string

	// Optional per-page view model payloads
	Catalog  any
	Quiz     any
	Historia any
}
