package content

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"almaradiante.org/alma-web/internal/i18n"
)

// Binding associates a page slot with the translation key path that fills it.
// Slots usually reuse the key path; they diverge only when two elements share
// one translation.
type Binding struct {
	Slot string
	Path string
}

// DefaultBindings covers the brochure's marked elements.
func DefaultBindings() []Binding {
	paths := []string{
		"nav.inicio",
		"nav.historia",
		"nav.catalogo",
		"nav.contacto",
		"hero.title",
		"hero.subtitle",
		"hero.cta",
		"services.title",
		"services.intro",
		"historia.title",
		"historia.intro",
		"catalog.title",
		"catalog.intro",
		"catalog.quiz.cta",
		"catalog.quiz.loading",
		"catalog.quiz.result_title",
		"catalog.quiz.retry",
		"contact.title",
		"contact.booking",
		"footer.note",
	}
	out := make([]Binding, 0, len(paths))
	for _, p := range paths {
		out = append(out, Binding{Slot: p, Path: p})
	}
	return out
}

// PageContent is one rendered observation of the binder: the active language,
// the document title, and the text for every slot.
type PageContent struct {
	Lang   string
	Title  string
	Values map[string]string
}

// Value returns the text for slot, empty when the slot never resolved.
func (pc PageContent) Value(slot string) string { return pc.Values[slot] }

// Binder applies a translation tree to the page's marked slots. A slot whose
// key path does not resolve keeps its previous text and logs a warning; the
// binder never blanks content and never fails. Render is idempotent.
type Binder struct {
	mu       sync.Mutex
	log      *zap.Logger
	bindings []Binding
	values   map[string]string
	lang     string
	title    string
}

// NewBinder builds a binder over the given bindings (DefaultBindings when nil).
func NewBinder(log *zap.Logger, bindings []Binding) *Binder {
	if log == nil {
		log = zap.NewNop()
	}
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Binder{log: log, bindings: bindings, values: map[string]string{}}
}

// Render resolves every binding against tree and returns the resulting page
// content. Sequence leaves join into one text block, one line per entry.
func (b *Binder) Render(tree i18n.Tree, lang string) PageContent {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, bind := range b.bindings {
		if s, ok := i18n.ResolveString(tree, bind.Path); ok {
			b.values[bind.Slot] = s
			continue
		}
		if list, ok := i18n.ResolveList(tree, bind.Path); ok {
			b.values[bind.Slot] = strings.Join(list, "\n")
			continue
		}
		b.log.Warn("translation key unresolved, keeping current text",
			zap.String("lang", lang), zap.String("key", bind.Path))
	}
	b.lang = lang
	if name, ok := i18n.ResolveString(tree, "brand.name"); ok {
		if tagline, ok := i18n.ResolveString(tree, "brand.tagline"); ok {
			b.title = name + " | " + tagline
		} else {
			b.title = name
		}
	}
	return b.snapshot()
}

func (b *Binder) snapshot() PageContent {
	values := make(map[string]string, len(b.values))
	for k, v := range b.values {
		values[k] = v
	}
	return PageContent{Lang: b.lang, Title: b.title, Values: values}
}

// Current returns the last rendered content without re-resolving.
func (b *Binder) Current() PageContent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}
