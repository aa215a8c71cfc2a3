package catalog

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almaradiante.org/alma-web/internal/quiz"
)

type fakeScheduler struct {
	mu    sync.Mutex
	queue []func()
}

func (f *fakeScheduler) after(_ time.Duration, fn func()) *time.Timer {
	f.mu.Lock()
	f.queue = append(f.queue, fn)
	f.mu.Unlock()
	return nil
}

func (f *fakeScheduler) fireAll() {
	for {
		f.mu.Lock()
		if len(f.queue) == 0 {
			f.mu.Unlock()
			return
		}
		fn := f.queue[0]
		f.queue = f.queue[1:]
		f.mu.Unlock()
		fn()
	}
}

func newTestController(t *testing.T) (*Controller, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	return NewController(nil, WithScheduler(sched.after)), sched
}

func cardFor(t *testing.T, c *Controller, p quiz.Product) Card {
	t.Helper()
	for _, card := range c.Snapshot() {
		if card.Product == p {
			return card
		}
	}
	t.Fatalf("card %s not in snapshot", p)
	return Card{}
}

func TestSnapshotOrderAndDefaults(t *testing.T) {
	c, _ := newTestController(t)
	cards := c.Snapshot()
	require.Len(t, cards, len(quiz.Products))
	for i, card := range cards {
		assert.Equal(t, quiz.Products[i], card.Product)
		assert.Equal(t, StateMystical, card.State)
		assert.False(t, card.Recommended)
	}
}

func TestToggleInvolution(t *testing.T) {
	c, _ := newTestController(t)

	state, err := c.Toggle(quiz.ProductWildfit)
	require.NoError(t, err)
	assert.Equal(t, StateRevealed, state)

	state, err = c.Toggle(quiz.ProductWildfit)
	require.NoError(t, err)
	assert.Equal(t, StateMystical, state)

	// other cards are untouched
	assert.Equal(t, StateMystical, cardFor(t, c, quiz.ProductCoaching).State)

	_, err = c.Toggle(quiz.Product("pilates"))
	assert.Error(t, err)
}

func TestHighlightForcesRevealAfterDelay(t *testing.T) {
	c, sched := newTestController(t)

	require.NoError(t, c.Highlight(quiz.ProductRadiant))
	card := cardFor(t, c, quiz.ProductRadiant)
	assert.True(t, card.Recommended)
	assert.Equal(t, StateMystical, card.State, "reveal is delayed")

	sched.fireAll()
	assert.Equal(t, StateRevealed, cardFor(t, c, quiz.ProductRadiant).State)

	assert.Error(t, c.Highlight(quiz.Product("pilates")))
}

func TestHighlightRevealsEvenWhenAlreadyToggled(t *testing.T) {
	c, sched := newTestController(t)
	_, err := c.Toggle(quiz.ProductCoaching)
	require.NoError(t, err)

	require.NoError(t, c.Highlight(quiz.ProductCoaching))
	sched.fireAll()
	assert.Equal(t, StateRevealed, cardFor(t, c, quiz.ProductCoaching).State)
}

func TestClearHighlightsSupersedesPendingReveal(t *testing.T) {
	c, sched := newTestController(t)
	require.NoError(t, c.Highlight(quiz.ProductFoodFreedom))

	c.ClearHighlights()
	sched.fireAll() // stale reveal must not fire

	card := cardFor(t, c, quiz.ProductFoodFreedom)
	assert.False(t, card.Recommended)
	assert.Equal(t, StateMystical, card.State)
}

func TestClearHighlightsKeepsRevealState(t *testing.T) {
	c, sched := newTestController(t)
	require.NoError(t, c.Highlight(quiz.ProductWildfit))
	sched.fireAll()

	c.ClearHighlights()
	card := cardFor(t, c, quiz.ProductWildfit)
	assert.False(t, card.Recommended)
	assert.Equal(t, StateRevealed, card.State, "clearing marks must not re-hide cards")
}
