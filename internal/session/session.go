package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/maphash"
	mrand "math/rand/v2"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrBadToken = errors.New("invalid session token")
	ErrFull     = errors.New("too many live sessions")
)

func createRand() *mrand.Rand {
	return mrand.New(mrand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Session is one live game. The engine is only reachable through Do, which
// serialises access to it.
type Session struct {
	ID        string
	StartedAt time.Time

	mu       sync.Mutex
	engine   *mines.Engine
	store    *Store
	lastSeen time.Time // guarded by store.mu
}

// Do runs fn with exclusive access to the engine and marks the session as
// used.
func (s *Session) Do(fn func(e *mines.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		s.store.touch(s)
	}
	fn(s.engine)
}

type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	secret   []byte
	idle     time.Duration
	max      int
	log      *logrus.Logger

	now     func() time.Time
	newRand func() mines.Source
}

// NewStore creates an empty store. Without a configured secret a random one
// is generated, so tokens do not survive a restart.
func NewStore(cfg config.SessionConfig, log *logrus.Logger) (*Store, error) {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("unable to generate session secret: %w", err)
		}
	}
	return &Store{
		sessions: make(map[string]*Session),
		secret:   secret,
		idle:     cfg.IdleTimeout.Duration,
		max:      cfg.MaxSessions,
		log:      log,
		now:      time.Now,
		newRand:  func() mines.Source { return createRand() },
	}, nil
}

func newID() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create builds a new game and registers it. The returned token authorises
// moves on the session.
func (s *Store) Create(p mines.GameParams) (*Session, string, error) {
	engine := mines.New(s.newRand())
	if err := engine.Build(p); err != nil {
		return nil, "", err
	}
	id, err := newID()
	if err != nil {
		return nil, "", fmt.Errorf("unable to generate session id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.max {
		s.sweepLocked()
		if len(s.sessions) >= s.max {
			return nil, "", ErrFull
		}
	}

	now := s.now()
	session := &Session{
		ID:        id,
		StartedAt: now,
		engine:    engine,
		store:     s,
		lastSeen:  now,
	}
	token, err := s.sign(session)
	if err != nil {
		return nil, "", fmt.Errorf("unable to sign session token: %w", err)
	}
	s.sessions[id] = session

	s.log.WithFields(logrus.Fields{
		"session": id,
		"seed":    p.Seed(),
	}).Debug("created session")

	return session, token, nil
}

func (s *Store) sign(session *Session) (string, error) {
	claims := Claims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(session.StartedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Get returns a live session and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if s.expired(session, now) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	session.lastSeen = now
	return session, nil
}

// Authorize returns the session id refers to if token was issued for it.
func (s *Store) Authorize(id, token string) (*Session, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadToken, err)
	}
	if claims.SessionID != id {
		return nil, ErrBadToken
	}
	return s.Get(id)
}

func (s *Store) touch(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.lastSeen = s.now()
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(session *Session, now time.Time) bool {
	return s.idle > 0 && now.Sub(session.lastSeen) > s.idle
}

// Sweep drops every session idle for longer than the configured timeout
// and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() (n int) {
	now := s.now()
	for id, session := range s.sessions {
		if s.expired(session, now) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.log.WithField("dropped", n).Debug("swept idle sessions")
	}
	return n
}
