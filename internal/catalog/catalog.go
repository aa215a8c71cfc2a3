package catalog

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"almaradiante.org/alma-web/internal/quiz"
)

// CardState is the reveal state of one catalog card.
type CardState string

const (
	// StateMystical hides the card content behind its image (default).
	StateMystical CardState = "mystical"
	// StateRevealed shows the card content.
	StateRevealed CardState = "revealed"
)

// DefaultRevealDelay paces the forced reveal of a recommended card.
const DefaultRevealDelay = 600 * time.Millisecond

// Card is the observable state of one offering's catalog card.
type Card struct {
	Product     quiz.Product `json:"product"`
	State       CardState    `json:"state"`
	Recommended bool         `json:"recommended"`
}

// Controller manages the per-card reveal toggles and the highlight applied
// when the quiz recommends an offering. Cards are independent; any number may
// be revealed at once.
type Controller struct {
	mu    sync.Mutex
	cards map[quiz.Product]*Card
	log   *zap.Logger
	delay time.Duration
	after func(time.Duration, func()) *time.Timer
	gen   uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithRevealDelay overrides the highlight reveal pacing.
func WithRevealDelay(d time.Duration) Option { return func(c *Controller) { c.delay = d } }

// WithScheduler replaces the timer source (tests pass a synchronous one).
func WithScheduler(after func(time.Duration, func()) *time.Timer) Option {
	return func(c *Controller) { c.after = after }
}

// NewController builds a controller with one mystical card per offering.
func NewController(log *zap.Logger, opts ...Option) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		cards: make(map[quiz.Product]*Card, len(quiz.Products)),
		log:   log,
		delay: DefaultRevealDelay,
		after: time.AfterFunc,
	}
	for _, p := range quiz.Products {
		c.cards[p] = &Card{Product: p, State: StateMystical}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Toggle flips one card between mystical and revealed and returns the new
// state. Toggling twice with no intervening highlight restores the original.
func (c *Controller) Toggle(p quiz.Product) (CardState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	card, ok := c.cards[p]
	if !ok {
		return "", fmt.Errorf("catalog: unknown product %q", p)
	}
	if card.State == StateMystical {
		card.State = StateRevealed
	} else {
		card.State = StateMystical
	}
	return card.State, nil
}

// Highlight marks the card recommended and forces it revealed after a short
// delay, regardless of its prior state. A later ClearHighlights supersedes a
// pending reveal.
func (c *Controller) Highlight(p quiz.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	card, ok := c.cards[p]
	if !ok {
		return fmt.Errorf("catalog: unknown product %q", p)
	}
	card.Recommended = true
	token := c.gen
	c.after(c.delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen != token {
			return // superseded highlight
		}
		card.State = StateRevealed
	})
	c.log.Debug("catalog highlight", zap.String("product", string(p)))
	return nil
}

// ClearHighlights removes the recommended marking from all cards without
// changing any reveal state.
func (c *Controller) ClearHighlights() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for _, card := range c.cards {
		card.Recommended = false
	}
}

// Snapshot returns the cards in catalog order.
func (c *Controller) Snapshot() []Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Card, 0, len(c.cards))
	for _, p := range quiz.Products {
		out = append(out, *c.cards[p])
	}
	return out
}
