package main

import (
	"errors"
	"net/http"
	"strings"

	"almaradiante.org/alma-web/internal/content"
	"almaradiante.org/alma-web/internal/handlers"
	"almaradiante.org/alma-web/internal/i18n"
	mw "almaradiante.org/alma-web/internal/middleware"
	"almaradiante.org/alma-web/internal/nav"
	"almaradiante.org/alma-web/internal/quiz"
	"almaradiante.org/alma-web/internal/seo"
)

// buildPageData assembles the layout view model shared by every page.
func buildPageData(r *http.Request) handlers.PageData {
	lang := mw.Lang(r)
	tree, _ := store.Tree(lang)
	pc := binder.Render(tree, lang)
	title := pc.Title
	if title == "" {
		title = "Alma Radiante"
	}
	vm := handlers.PageData{
		Title:      title,
		Lang:       lang,
		Path:       r.URL.Path,
		Nav:        nav.Build(r.URL.Path),
		Content:    pc,
		Theme:      siteCfg.Theme,
		Features:   siteCfg.Features,
		BookingURL: siteCfg.ExternalLinks.BookingURL,
	}
	vm.SEO.Title = title
	vm.SEO.Alternates = seo.BuildAlternates("", unprefixedPath(r.URL.Path), store.Languages())
	return vm
}

func unprefixedPath(p string) string {
	for _, code := range i18n.SupportedLanguages {
		if code == i18n.LangPrimary {
			continue
		}
		if p == "/"+code {
			return "/"
		}
		if strings.HasPrefix(p, "/"+code+"/") {
			return strings.TrimPrefix(p, "/"+code)
		}
	}
	return p
}

// HomeHandler renders the brochure landing page: hero, services, quiz entry,
// and the catalog cards.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	vm := buildPageData(r)
	vm.Quiz = handlers.HomeData{
		QuizAvailable: quizAvailable(vm.Lang),
		Cards:         buildCards(r, vm.Lang),
	}
	renderPage(w, r, "home", vm)
}

// CatalogoHandler renders the catalog page with the reveal-toggle cards.
func CatalogoHandler(w http.ResponseWriter, r *http.Request) {
	vm := buildPageData(r)
	vm.Catalog = buildCards(r, vm.Lang)
	renderPage(w, r, "catalogo", vm)
}

// HistoriaHandler renders the localized brand-story page.
func HistoriaHandler(w http.ResponseWriter, r *http.Request) {
	vm := buildPageData(r)
	page, err := pages.Get("historia", vm.Lang)
	if err != nil {
		if errors.Is(err, content.ErrPageNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "content unavailable", http.StatusInternalServerError)
		return
	}
	vm.Historia = page
	vm.Title = page.Title + " | " + vm.Title
	renderPage(w, r, "historia", vm)
}

// ContactoHandler renders the contact section with the booking link.
func ContactoHandler(w http.ResponseWriter, r *http.Request) {
	vm := buildPageData(r)
	renderPage(w, r, "contacto", vm)
}

func quizAvailable(lang string) bool {
	tree, ok := store.Tree(lang)
	if !ok {
		return false
	}
	_, err := i18n.QuizData(tree)
	return err == nil
}

// buildCards merges the visitor's card states with the localized titles.
func buildCards(r *http.Request, lang string) []handlers.CardView {
	titles := map[quiz.Product]string{}
	if tree, ok := store.Tree(lang); ok {
		if data, err := i18n.QuizData(tree); err == nil {
			titles = data.Titles
		}
	}
	sess := sessionFor(r)
	cards := sess.Catalog.Snapshot()
	out := make([]handlers.CardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, handlers.CardView{
			Product:     string(c.Product),
			Title:       titles[c.Product],
			Image:       c.Product.Image(),
			State:       string(c.State),
			Recommended: c.Recommended,
		})
	}
	return out
}
