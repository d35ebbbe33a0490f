package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLockoutAfterMaxFailures(t *testing.T) {
	g := NewLoginGuard(5, 15*time.Minute)

	for i := 0; i < 4; i++ {
		g.RecordFailure("a@example.com")
		require.False(t, g.IsLocked("a@example.com"), "failure %d should not lock yet", i+1)
	}
	g.RecordFailure("a@example.com")
	require.True(t, g.IsLocked("a@example.com"))

	// Other emails are unaffected
	require.False(t, g.IsLocked("b@example.com"))
}

func TestLockoutExpires(t *testing.T) {
	g := NewLoginGuard(2, 15*time.Minute)
	current := time.Now()
	g.now = func() time.Time { return current }

	g.RecordFailure("a@example.com")
	g.RecordFailure("a@example.com")
	require.True(t, g.IsLocked("a@example.com"))

	current = current.Add(14 * time.Minute)
	require.True(t, g.IsLocked("a@example.com"))

	current = current.Add(2 * time.Minute)
	require.False(t, g.IsLocked("a@example.com"))

	// Expiry resets the counter, one new failure does not re-lock
	g.RecordFailure("a@example.com")
	require.False(t, g.IsLocked("a@example.com"))
}

func TestClearResetsFailures(t *testing.T) {
	g := NewLoginGuard(3, time.Minute)
	g.RecordFailure("a@example.com")
	g.RecordFailure("a@example.com")
	g.Clear("a@example.com")

	g.RecordFailure("a@example.com")
	g.RecordFailure("a@example.com")
	require.False(t, g.IsLocked("a@example.com"))
}

func TestRateLimiterFixedWindow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	current := time.Now()
	rl.now = func() time.Time { return current }

	require.True(t, rl.Allow("1.2.3.4"))
	require.True(t, rl.Allow("1.2.3.4"))
	require.True(t, rl.Allow("1.2.3.4"))
	require.False(t, rl.Allow("1.2.3.4"))

	// Separate key, separate budget
	require.True(t, rl.Allow("5.6.7.8"))

	// Window rollover resets the count
	current = current.Add(61 * time.Second)
	require.True(t, rl.Allow("1.2.3.4"))
}
