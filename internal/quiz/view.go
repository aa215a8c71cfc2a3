package quiz

// View is the capability set the engine needs from its presentation adapter.
// The engine drives transitions; the view only reflects them. Implementations
// must not call back into the engine from these methods.
type View interface {
	ShowStart()
	ShowQuestion(index int, q Question)
	ShowLoading()
	ShowResult(winner Product, title string, image string)
	ShowError(msg string)
	ScrollToCatalog()
}

// Recommender receives the quiz outcome. Satisfied by catalog.Controller.
type Recommender interface {
	ClearHighlights()
	Highlight(p Product) error
}

// NopView discards every notification. Useful for tests and headless sessions.
type NopView struct{}

func (NopView) ShowStart()                         {}
func (NopView) ShowQuestion(int, Question)         {}
func (NopView) ShowLoading()                       {}
func (NopView) ShowResult(Product, string, string) {}
func (NopView) ShowError(string)                   {}
func (NopView) ScrollToCatalog()                   {}
