package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "almaradiante.org/alma-web/internal/middleware"
	"almaradiante.org/alma-web/internal/quiz"
)

type catalogResponse struct {
	Cards any `json:"cards"`
}

// CatalogStateHandler reports the visitor's card states with localized titles.
func CatalogStateHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{Cards: buildCards(r, mw.Lang(r))})
}

// CatalogToggleHandler flips one card between mystical and revealed.
func CatalogToggleHandler(w http.ResponseWriter, r *http.Request) {
	p := quiz.Product(chi.URLParam(r, "product"))
	if !p.IsKnown() {
		writeJSONError(w, http.StatusNotFound, "unknown product")
		return
	}
	sess := sessionFor(r)
	state, err := sess.Catalog.Toggle(p)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"product": string(p),
		"state":   string(state),
	})
}
