package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// ResolveInput carries everything language resolution depends on. Resolution
// is a pure function of these fields, deterministic for identical inputs.
type ResolveInput struct {
	// Persisted is the previously saved preference, empty when none.
	Persisted string
	// PersistenceEnabled gates whether Persisted may be honored at all.
	PersistenceEnabled bool
	// Path is the request URL path, scanned for a /en/ or /de/ segment.
	Path string
	// AcceptLanguage is the browser's ordered preference header.
	AcceptLanguage string
	// Available reports whether a translation tree loaded for a code.
	Available func(code string) bool
}

// ResolveLanguage picks the active language in strict priority order:
// persisted preference (flag-gated), URL segment, browser preference, primary.
// Any step selecting a code without a loaded tree falls back to the primary.
func ResolveLanguage(in ResolveInput) string {
	available := in.Available
	if available == nil {
		available = func(string) bool { return false }
	}
	if in.PersistenceEnabled && in.Persisted != "" {
		code := strings.ToLower(in.Persisted)
		if isSupported(code) && available(code) {
			return code
		}
		// unavailable preference is ignored, not an error
	}
	if code := languageFromPath(in.Path); code != "" {
		if available(code) {
			return code
		}
		return LangPrimary
	}
	if code := languageFromAccept(in.AcceptLanguage); code != "" {
		if available(code) {
			return code
		}
		return LangPrimary
	}
	return LangPrimary
}

func isSupported(code string) bool {
	for _, c := range SupportedLanguages {
		if c == code {
			return true
		}
	}
	return false
}

// languageFromPath recognizes an explicit /en/ or /de/ segment. The primary
// language has no segment, so its absence falls through to the next step.
func languageFromPath(path string) string {
	for _, code := range SupportedLanguages {
		if code == LangPrimary {
			continue
		}
		if path == "/"+code || strings.HasPrefix(path, "/"+code+"/") {
			return code
		}
	}
	return ""
}

// languageFromAccept scans the ordered browser preference list for the first
// 2-letter base matching a supported code.
func languageFromAccept(header string) string {
	if header == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		base, conf := tag.Base()
		if conf == language.No {
			continue
		}
		code := strings.ToLower(base.String())
		if isSupported(code) {
			return code
		}
	}
	return ""
}
