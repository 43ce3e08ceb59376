package infra

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Breaker guards calls to an unreliable dependency (the SMTP relay).
//
//	closed    calls pass through; consecutive failures are counted
//	open      calls fail fast with ErrCircuitOpen until Cooldown elapses
//	half-open probes pass through; Recover successes close it, one failure reopens it
type Breaker struct {
	name string
	cfg  BreakerConfig

	mu       sync.Mutex
	state    BreakerState
	failures int
	probes   int
	openedAt time.Time
	now      func() time.Time
}

// BreakerState is the breaker's position; String feeds /health.
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// ErrCircuitOpen is returned by Do while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type BreakerConfig struct {
	Trip     int           // consecutive failures that open the circuit
	Recover  int           // half-open successes that close it again
	Cooldown time.Duration // time spent open before probing
}

// DefaultBreakerConfig suits an SMTP relay: a handful of failures, one minute off.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{Trip: 5, Recover: 2, Cooldown: time.Minute}
}

func NewBreaker(name string, cfg BreakerConfig) *Breaker {
	def := DefaultBreakerConfig()
	if cfg.Trip <= 0 {
		cfg.Trip = def.Trip
	}
	if cfg.Recover <= 0 {
		cfg.Recover = def.Recover
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	return &Breaker{name: name, cfg: cfg, now: time.Now}
}

func (b *Breaker) Name() string { return b.name }

// State reports the current position, moving open → half-open once the cooldown is over.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Breaker) stateLocked() BreakerState {
	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cfg.Cooldown {
		b.transition(BreakerHalfOpen)
	}
	return b.state
}

// Do runs fn unless the circuit is open, and records its outcome.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	if b.stateLocked() == BreakerOpen {
		b.mu.Unlock()
		return ErrCircuitOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.failures++
		if b.state == BreakerHalfOpen || b.failures >= b.cfg.Trip {
			b.openedAt = b.now()
			b.transition(BreakerOpen)
		}
		return err
	}

	b.failures = 0
	if b.state == BreakerHalfOpen {
		b.probes++
		if b.probes >= b.cfg.Recover {
			b.transition(BreakerClosed)
		}
	}
	return nil
}

// transition must be called with mu held.
func (b *Breaker) transition(to BreakerState) {
	if b.state == to {
		return
	}
	log.Warn().Str("breaker", b.name).Str("from", b.state.String()).Str("to", to.String()).
		Msg("circuit breaker state change")
	b.state = to
	b.probes = 0
	if to != BreakerOpen {
		b.failures = 0
	}
}
