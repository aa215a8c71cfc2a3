package quiz

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduler queues scheduled callbacks instead of arming timers, so tests
// drive the delayed transitions deterministically. Callbacks must run outside
// the engine's methods: the engine re-locks inside them.
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

// fireOne runs the oldest pending callback.
func (f *fakeScheduler) fireOne(t *testing.T) {
	t.Helper()
	f.mu.Lock()
	require.NotEmpty(t, f.queue, "no scheduled callback pending")
	fn := f.queue[0]
	f.queue = f.queue[1:]
	f.mu.Unlock()
	fn()
}

// fireAll drains the queue, including callbacks scheduled while draining.
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

func (f *fakeScheduler) pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

type stubRecommender struct {
	cleared     int
	highlighted []Product
}

func (s *stubRecommender) ClearHighlights() { s.cleared++ }
func (s *stubRecommender) Highlight(p Product) error {
	s.highlighted = append(s.highlighted, p)
	return nil
}

func testData() Data {
	opts := []string{
		"Claridad y hábitos (Coaching)",
		"Alimentación de raíz (WildFit)",
		"Paz con la comida (Food Freedom)",
		"Energía y vitalidad (Radiant Health)",
	}
	data := Data{Titles: map[Product]string{
		ProductCoaching:    "Coaching personal",
		ProductWildfit:     "Programa WildFit",
		ProductFoodFreedom: "Food Freedom",
		ProductRadiant:     "Radiant Health",
	}}
	for i := 0; i < QuestionCount; i++ {
		data.Questions = append(data.Questions, Question{Prompt: "pregunta", Options: opts})
	}
	return data
}

func newTestEngine(t *testing.T, data Data) (*Engine, *fakeScheduler, *stubRecommender) {
	t.Helper()
	sched := &fakeScheduler{}
	rec := &stubRecommender{}
	eng := NewEngine(data, nil, rec, nil, WithScheduler(sched.after))
	return eng, sched, rec
}

func TestStartWithoutDataRefuses(t *testing.T) {
	eng, _, _ := newTestEngine(t, Data{})
	err := eng.Start()
	require.ErrorIs(t, err, ErrUnavailable)
	snap := eng.Snapshot()
	assert.Equal(t, PhaseStart, snap.Phase)
	assert.NotEmpty(t, snap.Error)

	// a retry after data arrives succeeds and clears the error
	eng.SetData(testData())
	require.NoError(t, eng.Start())
	snap = eng.Snapshot()
	assert.Equal(t, PhaseQuestion, snap.Phase)
	assert.Empty(t, snap.Error)
}

func TestFullFlowWildfitWins(t *testing.T) {
	eng, sched, rec := newTestEngine(t, testData())
	require.NoError(t, eng.Start())

	// three WildFit answers, one Coaching
	for i := 0; i < 3; i++ {
		require.NoError(t, eng.Select(1))
		sched.fireOne(t) // acknowledgment advance
	}
	require.NoError(t, eng.Select(0))
	sched.fireOne(t)

	snap := eng.Snapshot()
	assert.Equal(t, PhaseLoading, snap.Phase)
	assert.Len(t, snap.Answers, QuestionCount)

	sched.fireOne(t) // loading finishes
	snap = eng.Snapshot()
	assert.Equal(t, PhaseResult, snap.Phase)
	assert.Equal(t, ProductWildfit, snap.Winner)
	assert.Equal(t, "Programa WildFit", snap.WinnerTitle)
	assert.Equal(t, ProductWildfit.Image(), snap.WinnerImage)
	assert.False(t, snap.Scrolled)

	assert.Equal(t, 1, rec.cleared)
	assert.Equal(t, []Product{ProductWildfit}, rec.highlighted)

	sched.fireOne(t) // scroll delay elapses
	assert.True(t, eng.Snapshot().Scrolled)
	assert.Zero(t, sched.pending())
}

func TestTieResolvesToCoaching(t *testing.T) {
	eng, sched, _ := newTestEngine(t, testData())
	require.NoError(t, eng.Start())
	for i := 0; i < QuestionCount; i++ {
		require.NoError(t, eng.Select(i)) // one answer per product
		sched.fireOne(t)
	}
	sched.fireAll()
	snap := eng.Snapshot()
	assert.Equal(t, PhaseResult, snap.Phase)
	assert.Equal(t, ProductCoaching, snap.Winner)
}

func TestReselectionOverwritesPendingAnswer(t *testing.T) {
	eng, sched, _ := newTestEngine(t, testData())
	require.NoError(t, eng.Start())

	require.NoError(t, eng.Select(1)) // WildFit
	require.NoError(t, eng.Select(3)) // changed mind: Radiant Health
	assert.Equal(t, 1, sched.pending(), "re-selection must not schedule a second advance")

	snap := eng.Snapshot()
	require.Len(t, snap.Answers, 1)
	assert.Contains(t, snap.Answers[0], "Radiant")
	assert.Equal(t, 0, snap.Scores[ProductWildfit])
	assert.Equal(t, 1, snap.Scores[ProductRadiant])

	total := 0
	for _, n := range snap.Scores {
		total += n
	}
	assert.Equal(t, len(snap.Answers), total, "score total must equal answer count")

	sched.fireOne(t)
	assert.Equal(t, 1, eng.Snapshot().QuestionIndex)
}

func TestSelectErrors(t *testing.T) {
	eng, sched, _ := newTestEngine(t, testData())

	assert.ErrorIs(t, eng.Select(0), ErrNotAcceptingAnswers)

	require.NoError(t, eng.Start())
	assert.ErrorIs(t, eng.Select(-1), ErrOptionOutOfRange)
	assert.ErrorIs(t, eng.Select(4), ErrOptionOutOfRange)

	// drive into loading; answers are refused there too
	for i := 0; i < QuestionCount; i++ {
		require.NoError(t, eng.Select(0))
		sched.fireOne(t)
	}
	assert.ErrorIs(t, eng.Select(0), ErrNotAcceptingAnswers)
}

func TestResetInvalidatesPendingTimers(t *testing.T) {
	eng, sched, _ := newTestEngine(t, testData())
	require.NoError(t, eng.Start())
	require.NoError(t, eng.Select(1))

	eng.Reset()
	sched.fireAll() // stale acknowledgment must be a no-op

	snap := eng.Snapshot()
	assert.Equal(t, PhaseStart, snap.Phase)
	assert.Empty(t, snap.Answers)
	for _, n := range snap.Scores {
		assert.Zero(t, n)
	}

	// the engine is immediately usable again
	require.NoError(t, eng.Start())
	assert.Equal(t, PhaseQuestion, eng.Snapshot().Phase)
}

func TestSetDataIgnoredMidFlow(t *testing.T) {
	data := testData()
	eng, _, _ := newTestEngine(t, data)
	require.NoError(t, eng.Start())

	eng.SetData(Data{})
	snap := eng.Snapshot()
	require.NotNil(t, snap.Question)
	assert.Equal(t, data.Questions[0].Prompt, snap.Question.Prompt)
}
