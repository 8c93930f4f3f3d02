package cart

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

const (
	// DefaultIdleTTL is how long an untouched cart survives.
	DefaultIdleTTL = 2 * time.Hour

	// CleanupInterval is how often idle carts are swept
	CleanupInterval = 30 * time.Second
)

type session struct {
	engine   *Engine
	lastSeen time.Time
}

// Sessions owns one Engine per device session and drops carts that have
// been idle for longer than the TTL.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*session
	catalog  ProductLookup
	clock    clockwork.Clock
	idleTTL  time.Duration
	log      zerolog.Logger

	stopCleanup chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// NewSessions starts the background sweep; call Close to stop it.
func NewSessions(catalog ProductLookup, idleTTL time.Duration, clock clockwork.Clock, log zerolog.Logger) *Sessions {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Sessions{
		sessions:    make(map[string]*session),
		catalog:     catalog,
		clock:       clock,
		idleTTL:     idleTTL,
		log:         log,
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *Sessions) cleanupLoop() {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			s.expireIdle()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *Sessions) expireIdle() {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.idleTTL {
			delete(s.sessions, id)
			s.log.Debug().Str("session_id", id).Msg("expired idle cart")
		}
	}
}

// Get returns the session's cart, creating an empty one on first use.
// Every call counts as activity.
func (s *Sessions) Get(sessionID string) *Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{
			engine: NewEngine(s.catalog, s.clock, s.log.With().Str("session_id", sessionID).Logger()),
		}
		s.sessions[sessionID] = sess
	}
	sess.lastSeen = s.clock.Now()
	return sess.engine
}

func (s *Sessions) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Sessions) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCleanup)
	})
	s.wg.Wait()
}
