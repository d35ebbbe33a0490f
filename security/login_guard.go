package security

import (
	"sync"
	"time"
)

type attempt struct {
	count    int
	lockedAt time.Time
}

// LoginGuard tracks failed login attempts per email and locks an account out
// after too many. It is constructed once at process start and handed to the
// auth layer; state is process-local.
type LoginGuard struct {
	mu          sync.Mutex
	maxFailures int
	lockout     time.Duration
	attempts    map[string]*attempt
	now         func() time.Time
}

func NewLoginGuard(maxFailures int, lockout time.Duration) *LoginGuard {
	return &LoginGuard{
		maxFailures: maxFailures,
		lockout:     lockout,
		attempts:    make(map[string]*attempt),
		now:         time.Now,
	}
}

// IsLocked reports whether the email is currently locked out. An expired
// lockout is cleared on the way through.
func (g *LoginGuard) IsLocked(email string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, ok := g.attempts[email]
	if !ok || a.count < g.maxFailures {
		return false
	}
	if g.now().Sub(a.lockedAt) < g.lockout {
		return true
	}
	delete(g.attempts, email)
	return false
}

// RecordFailure counts one failed attempt, locking the account when the
// threshold is reached.
func (g *LoginGuard) RecordFailure(email string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	a, ok := g.attempts[email]
	if !ok {
		a = &attempt{}
		g.attempts[email] = a
	}
	a.count++
	if a.count >= g.maxFailures {
		a.lockedAt = g.now()
	}
}

// Clear forgets all failures for the email after a successful login.
func (g *LoginGuard) Clear(email string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.attempts, email)
}
