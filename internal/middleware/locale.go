package middleware

import (
	"net/http"

	"almaradiante.org/alma-web/internal/i18n"
)

// Locale resolves the active language for each request and stores it in
// context. Resolution order: persisted session preference (only when the
// persistence feature flag is on), URL language segment, Accept-Language,
// primary. Persisting a manual switch is the language handler's job, not ours.
func Locale(store *i18n.Store, persistEnabled func() bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := GetSession(r)
			lang := i18n.ResolveLanguage(i18n.ResolveInput{
				Persisted:          s.Locale,
				PersistenceEnabled: persistEnabled(),
				Path:               r.URL.Path,
				AcceptLanguage:     r.Header.Get("Accept-Language"),
				Available:          store.Available,
			})
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// VaryLocale sets Vary header for Accept-Language on dynamic responses
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// append to existing Vary if any
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}
