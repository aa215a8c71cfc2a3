package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"almaradiante.org/alma-web/internal/i18n"
	mw "almaradiante.org/alma-web/internal/middleware"
)

// LanguageSwitchHandler applies a manual language choice. The choice is only
// persisted in the session cookie when the persistence feature flag is on;
// either way the visitor is redirected to the localized page.
func LanguageSwitchHandler(w http.ResponseWriter, r *http.Request) {
	code := strings.ToLower(chi.URLParam(r, "code"))
	supported := false
	for _, c := range i18n.SupportedLanguages {
		if c == code {
			supported = true
			break
		}
	}
	if !supported {
		writeJSONError(w, http.StatusNotFound, "unsupported language")
		return
	}
	if !store.Available(code) {
		writeJSONError(w, http.StatusConflict, "language unavailable")
		return
	}
	if siteCfg.Features.LanguagePersistence {
		s := mw.GetSession(r)
		if s.Locale != code {
			s.Locale = code
			s.MarkDirty()
		}
	}
	target := "/"
	if code != i18n.LangPrimary {
		target = "/" + code
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
