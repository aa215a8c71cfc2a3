package main

import (
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"almaradiante.org/alma-web/internal/catalog"
	mw "almaradiante.org/alma-web/internal/middleware"
	"almaradiante.org/alma-web/internal/quiz"
)

// session is the server-side state for one visitor: their quiz engine and
// catalog controller. Quiz state never persists across page reloads beyond
// the lifetime of this in-memory entry.
type session struct {
	engine   *catalogEngine
	lastSeen time.Time
}

// catalogEngine pairs the engine with the controller it recommends into.
type catalogEngine struct {
	Quiz    *quiz.Engine
	Catalog *catalog.Controller
}

type sessionRegistry struct {
	mu     sync.Mutex
	items  map[string]*session
	log    *zap.Logger
	ttl    time.Duration
	delays quiz.Delays
	reveal time.Duration
}

func newSessionRegistry(log *zap.Logger) *sessionRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	return &sessionRegistry{
		items:  map[string]*session{},
		log:    log,
		ttl:    2 * time.Hour,
		delays: quiz.DefaultDelays(),
		reveal: catalog.DefaultRevealDelay,
	}
}

// get returns the session for id, creating it on first sight.
func (sr *sessionRegistry) get(id string) *catalogEngine {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	s, ok := sr.items[id]
	if !ok {
		cat := catalog.NewController(sr.log, catalog.WithRevealDelay(sr.reveal))
		view := &logView{log: sr.log.With(zap.String("session", id))}
		eng := quiz.NewEngine(quiz.Data{}, view, cat, sr.log, quiz.WithDelays(sr.delays))
		s = &session{engine: &catalogEngine{Quiz: eng, Catalog: cat}}
		sr.items[id] = s
	}
	s.lastSeen = time.Now()
	return s.engine
}

// sweep drops sessions idle longer than the TTL.
func (sr *sessionRegistry) sweep(every time.Duration) {
	for range time.Tick(every) {
		cutoff := time.Now().Add(-sr.ttl)
		sr.mu.Lock()
		for id, s := range sr.items {
			if s.lastSeen.Before(cutoff) {
				delete(sr.items, id)
			}
		}
		sr.mu.Unlock()
	}
}

// sessionFor resolves the request's server-side session from its cookie.
func sessionFor(r *http.Request) *catalogEngine {
	return sessions.get(mw.GetSession(r).ID)
}

// logView is the presentation adapter for headless (JSON-polled) sessions:
// transitions are observable through Snapshot, so the view only traces them.
type logView struct {
	log *zap.Logger
}

func (v *logView) ShowStart() { v.log.Debug("quiz view: start") }
func (v *logView) ShowQuestion(index int, q quiz.Question) {
	v.log.Debug("quiz view: question", zap.Int("index", index))
}
func (v *logView) ShowLoading() { v.log.Debug("quiz view: loading") }
func (v *logView) ShowResult(winner quiz.Product, title, image string) {
	v.log.Debug("quiz view: result", zap.String("winner", string(winner)))
}
func (v *logView) ShowError(msg string) { v.log.Debug("quiz view: error", zap.String("msg", msg)) }
func (v *logView) ScrollToCatalog()     { v.log.Debug("quiz view: scroll to catalog") }
