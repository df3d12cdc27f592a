package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/issueboard/internal/models"
	"github.com/joescharf/issueboard/internal/refdata"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(t *testing.T, ttl time.Duration) (*Manager, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)}
	return NewManager(refdata.Seed, ttl, WithClock(clock.Now)), clock
}

func TestManager_GetCreatesSession(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	id, page := m.Get("")
	require.NotEmpty(t, id)
	require.NotNil(t, page)
	assert.Len(t, id, 26, "ULID string")
	assert.Equal(t, 1, m.Len())

	again, samePage := m.Get(id)
	assert.Equal(t, id, again)
	assert.Same(t, page, samePage)

	other, otherPage := m.Get("unknown-id")
	assert.NotEqual(t, "unknown-id", other)
	assert.NotSame(t, page, otherPage)
	assert.Equal(t, 2, m.Len())
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)

	_, a := m.Get("")
	_, b := m.Get("")

	a.DragStart("ISS-1")
	a.DragEnd("ISS-1", "Done")

	ia, _ := a.Store().Get("ISS-1")
	ib, _ := b.Store().Get("ISS-1")
	assert.Equal(t, models.StatusDone, ia.Status)
	assert.Equal(t, models.StatusBacklog, ib.Status)
}

func TestManager_SweepExpiresIdle(t *testing.T) {
	m, clock := newTestManager(t, 30*time.Minute)

	idle, _ := m.Get("")
	clock.Advance(20 * time.Minute)
	active, _ := m.Get("")
	clock.Advance(15 * time.Minute)

	assert.Equal(t, 1, m.Sweep())
	_, ok := m.Lookup(idle)
	assert.False(t, ok)
	_, ok = m.Lookup(active)
	assert.True(t, ok)
}

func TestManager_ExpiredSessionStartsFromSeed(t *testing.T) {
	m, clock := newTestManager(t, time.Minute)

	id, page := m.Get("")
	page.DragStart("ISS-1")
	page.DragEnd("ISS-1", "Done")

	clock.Advance(2 * time.Minute)
	m.Sweep()

	newID, fresh := m.Get(id)
	assert.NotEqual(t, id, newID)
	issue, _ := fresh.Store().Get("ISS-1")
	assert.Equal(t, models.StatusBacklog, issue.Status)
}

func TestManager_NoTTL(t *testing.T) {
	m, clock := newTestManager(t, 0)
	m.Get("")
	clock.Advance(24 * time.Hour)
	assert.Zero(t, m.Sweep())
	assert.Equal(t, 1, m.Len())
}

func TestManager_End(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	id, _ := m.Get("")
	m.End(id)
	assert.Zero(t, m.Len())
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	m := NewManager(refdata.Seed, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
