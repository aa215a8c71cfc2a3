package handlers

// HomeData is the home page payload: the quiz entry point plus the catalog
// cards rendered below the fold.
type HomeData struct {
	QuizAvailable bool
	Cards         []CardView
}

// CardView is one catalog card as the template sees it.
type CardView struct {
	Product     string
	Title       string
	Image       string
	State       string
	Recommended bool
}
