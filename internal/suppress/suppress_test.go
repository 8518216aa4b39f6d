package suppress_test

import (
	"testing"
	"time"

	"github.com/smartfolder/smartfolder/internal/suppress"
	"github.com/stretchr/testify/assert"
)

func TestMarkAndIsIgnored(t *testing.T) {
	s := suppress.New()
	assert.False(t, s.IsIgnored("/a"))
	s.Mark("/a")
	assert.True(t, s.IsIgnored("/a"))
}

func TestIgnoreExpiresAfterWindow(t *testing.T) {
	clock := time.Now()
	s := suppress.NewWithClock(func() time.Time { return clock })

	s.Mark("/a")
	assert.True(t, s.IsIgnored("/a"))

	clock = clock.Add(suppress.Window + time.Second)
	assert.False(t, s.IsIgnored("/a"))
}

func TestMarkRestartsWindowInsteadOfExtending(t *testing.T) {
	clock := time.Now()
	s := suppress.NewWithClock(func() time.Time { return clock })

	s.Mark("/a")
	clock = clock.Add(5 * time.Second)
	s.Mark("/a") // refresh
	clock = clock.Add(6 * time.Second)
	assert.True(t, s.IsIgnored("/a"), "refreshed mark should still be active 11s after the first mark")
}
