package nav

import "strings"

// Item represents a top-level navigation item.
type Item struct {
	Path     string // e.g. "/catalogo"
	LabelKey string // i18n key, e.g. "nav.catalogo"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Main is the brochure's primary navigation definition.
var Main = []Item{
	{Path: "/", LabelKey: "nav.inicio"},
	{Path: "/historia", LabelKey: "nav.historia"},
	{Path: "/catalogo", LabelKey: "nav.catalogo"},
	{Path: "/contacto", LabelKey: "nav.contacto"},
}

// Build renders navigation items with active state given the current path.
// A language prefix (/en, /de) is stripped before matching so the same item
// stays active across localized variants.
func Build(currentPath string) []RenderedItem {
	currentPath = stripLangPrefix(currentPath)
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func stripLangPrefix(p string) string {
	for _, code := range []string{"en", "de"} {
		if p == "/"+code {
			return "/"
		}
		if strings.HasPrefix(p, "/"+code+"/") {
			return strings.TrimPrefix(p, "/"+code)
		}
	}
	return p
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/catalogo" or "/catalogo/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}
