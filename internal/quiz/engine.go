package quiz

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Question is one multiple-choice step. Options carry the offering name as
// trailing parenthesized text; see ProductFromOption.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// Data is the quiz section of a translation tree, resolved ahead of Start.
type Data struct {
	Questions []Question
	Titles    map[Product]string
}

// QuestionCount is the fixed length of the flow.
const QuestionCount = 4

var (
	// ErrUnavailable is returned by Start when no quiz data was loaded for the
	// active language. The engine stays on the start screen.
	ErrUnavailable = errors.New("quiz: data unavailable")
	// ErrNotAcceptingAnswers is returned by Select outside the question phase.
	ErrNotAcceptingAnswers = errors.New("quiz: not accepting answers")
	// ErrOptionOutOfRange is returned by Select for an option index outside 0..3.
	ErrOptionOutOfRange = errors.New("quiz: option out of range")
)

// Phase names the engine states.
type Phase string

const (
	PhaseStart    Phase = "start"
	PhaseQuestion Phase = "question"
	PhaseLoading  Phase = "loading"
	PhaseResult   Phase = "result"
)

// Delays configures the scheduled transitions. All are collapsible in tests.
type Delays struct {
	Ack     time.Duration // selection acknowledgment before advancing
	Loading time.Duration // loading screen before the result
	Scroll  time.Duration // result display before the catalog scroll
}

// DefaultDelays mirrors the pacing of the site's quiz flow.
func DefaultDelays() Delays {
	return Delays{Ack: 400 * time.Millisecond, Loading: 1600 * time.Millisecond, Scroll: 900 * time.Millisecond}
}

// Engine drives the multiple-choice flow: Start -> Question(0..3) -> Loading ->
// Result, with an explicit Reset back to Start. All mutation happens under one
// mutex; scheduled transitions carry the session token current at scheduling
// time and are no-ops once Reset has bumped it.
type Engine struct {
	mu     sync.Mutex
	view   View
	rec    Recommender
	log    *zap.Logger
	delays Delays
	after  func(time.Duration, func()) *time.Timer

	data Data

	phase          Phase
	current        int
	answers        []string
	credited       []Product
	scores         map[Product]int
	session        uint64
	advancePending bool
	scrolled       bool
	lastError      string
}

// Option configures an Engine.
type Option func(*Engine)

// WithDelays overrides the transition pacing.
func WithDelays(d Delays) Option { return func(e *Engine) { e.delays = d } }

// WithScheduler replaces the timer source (tests pass a synchronous one).
func WithScheduler(after func(time.Duration, func()) *time.Timer) Option {
	return func(e *Engine) { e.after = after }
}

// NewEngine builds an engine over the resolved quiz data. A Data with no
// questions is accepted; Start will refuse to leave the start screen for it.
func NewEngine(data Data, view View, rec Recommender, log *zap.Logger, opts ...Option) *Engine {
	if view == nil {
		view = NopView{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		view:   view,
		rec:    rec,
		log:    log,
		delays: DefaultDelays(),
		after:  time.AfterFunc,
		data:   data,
		phase:  PhaseStart,
		scores: zeroScores(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetData swaps the quiz data, e.g. after a language change. Only allowed on
// the start screen; mid-flow the running session keeps its questions.
func (e *Engine) SetData(data Data) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase == PhaseStart {
		e.data = data
	}
}

func zeroScores() map[Product]int {
	s := make(map[Product]int, len(Products))
	for _, p := range Products {
		s[p] = 0
	}
	return s
}

// Start moves to the first question. Without loaded quiz data the transition
// is aborted, a user-visible error is surfaced, and the state stays Start.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseStart {
		return nil
	}
	if len(e.data.Questions) != QuestionCount {
		e.lastError = "quiz data unavailable"
		e.view.ShowError(e.lastError)
		e.log.Warn("quiz start refused: data unavailable", zap.Int("questions", len(e.data.Questions)))
		return ErrUnavailable
	}
	e.lastError = ""
	e.phase = PhaseQuestion
	e.current = 0
	e.view.ShowQuestion(0, e.data.Questions[0])
	return nil
}

// Select records the chosen option for the current question and schedules the
// advance. Re-selecting before the advance fires overwrites the previous
// answer: the previously credited product is decremented before the new one is
// credited, so sum(scores) == len(answers) holds at every observation point.
func (e *Engine) Select(option int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseQuestion {
		return ErrNotAcceptingAnswers
	}
	q := e.data.Questions[e.current]
	if option < 0 || option >= len(q.Options) {
		return ErrOptionOutOfRange
	}
	text := q.Options[option]
	p := ProductFromOption(text)
	if len(e.answers) == e.current+1 {
		// overwrite the pending selection for this question
		prev := e.credited[e.current]
		e.scores[prev]--
		e.answers[e.current] = text
		e.credited[e.current] = p
	} else {
		e.answers = append(e.answers, text)
		e.credited = append(e.credited, p)
	}
	e.scores[p]++
	if !e.advancePending {
		e.advancePending = true
		e.schedule(e.delays.Ack, e.advance)
	}
	return nil
}

// schedule runs fn under the mutex after d, unless Reset superseded the session.
func (e *Engine) schedule(d time.Duration, fn func()) {
	token := e.session
	e.after(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.session != token {
			return // stale timer from a superseded session
		}
		fn()
	})
}

func (e *Engine) advance() {
	e.advancePending = false
	if e.phase != PhaseQuestion {
		return
	}
	if e.current == QuestionCount-1 {
		e.phase = PhaseLoading
		e.view.ShowLoading()
		e.schedule(e.delays.Loading, e.finish)
		return
	}
	e.current++
	e.view.ShowQuestion(e.current, e.data.Questions[e.current])
}

func (e *Engine) finish() {
	if e.phase != PhaseLoading {
		return
	}
	winner := CalculateWinningProduct(e.scores)
	e.phase = PhaseResult
	if e.rec != nil {
		e.rec.ClearHighlights()
		if err := e.rec.Highlight(winner); err != nil {
			e.log.Warn("highlight recommended card", zap.String("product", string(winner)), zap.Error(err))
		}
	}
	e.view.ShowResult(winner, e.data.Titles[winner], winner.Image())
	e.schedule(e.delays.Scroll, func() {
		e.scrolled = true
		e.view.ScrollToCatalog()
	})
}

// Reset discards the session: answers and scores are cleared, pending timers
// are invalidated, and the start screen is restored.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session++
	e.phase = PhaseStart
	e.current = 0
	e.answers = nil
	e.credited = nil
	e.scores = zeroScores()
	e.advancePending = false
	e.scrolled = false
	e.lastError = ""
	e.view.ShowStart()
}

// Snapshot is an observation of the engine for state endpoints and tests.
type Snapshot struct {
	Phase         Phase           `json:"phase"`
	QuestionIndex int             `json:"question_index"`
	Question      *Question       `json:"question,omitempty"`
	Answers       []string        `json:"answers"`
	Scores        map[Product]int `json:"scores"`
	Winner        Product         `json:"winner,omitempty"`
	WinnerTitle   string          `json:"winner_title,omitempty"`
	WinnerImage   string          `json:"winner_image,omitempty"`
	Scrolled      bool            `json:"scrolled"`
	Error         string          `json:"error,omitempty"`
}

// Snapshot returns a copy of the observable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := Snapshot{
		Phase:         e.phase,
		QuestionIndex: e.current,
		Answers:       append([]string(nil), e.answers...),
		Scores:        make(map[Product]int, len(e.scores)),
		Scrolled:      e.scrolled,
		Error:         e.lastError,
	}
	for p, n := range e.scores {
		s.Scores[p] = n
	}
	if e.phase == PhaseQuestion {
		q := e.data.Questions[e.current]
		s.Question = &q
	}
	if e.phase == PhaseResult {
		w := CalculateWinningProduct(e.scores)
		s.Winner = w
		s.WinnerTitle = e.data.Titles[w]
		s.WinnerImage = w.Image()
	}
	return s
}
