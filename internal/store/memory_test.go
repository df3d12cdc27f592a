package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/issueboard/internal/models"
)

func testSeed() []models.Issue {
	return []models.Issue{
		{ID: "ISS-1", Subject: "Hinge", Office: "Kadamba Hostel - Carpentry", Assignee: "Mukesh", Priority: models.PriorityHigh, Status: models.StatusBacklog},
		{ID: "ISS-2", Subject: "Tap", Office: "Plumber", Assignee: "Rakesh Kumar", Priority: models.PriorityNormal, Status: models.StatusInProgress},
		{ID: "ISS-3", Subject: "Light", Office: "Electrical", Assignee: "Santosh", Priority: models.PriorityLow, Status: models.StatusDone},
	}
}

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(testSeed())
}

func TestNewMemoryStore_PreservesOrder(t *testing.T) {
	s := newTestStore(t)
	issues := s.List()
	require.Len(t, issues, 3)
	assert.Equal(t, "ISS-1", issues[0].ID)
	assert.Equal(t, "ISS-2", issues[1].ID)
	assert.Equal(t, "ISS-3", issues[2].ID)
}

func TestNewMemoryStore_CopiesSeed(t *testing.T) {
	seed := testSeed()
	s := NewMemoryStore(seed)
	seed[0].Status = models.StatusDone

	got, ok := s.Get("ISS-1")
	require.True(t, ok)
	assert.Equal(t, models.StatusBacklog, got.Status)
}

func TestGet(t *testing.T) {
	s := newTestStore(t)

	got, ok := s.Get("ISS-2")
	require.True(t, ok)
	assert.Equal(t, "Tap", got.Subject)

	_, ok = s.Get("ISS-404")
	assert.False(t, ok)
}

func TestSetStatus_ChangesOnlyTarget(t *testing.T) {
	s := newTestStore(t)
	before := s.List()

	changed := s.SetStatus("ISS-1", models.StatusReview)
	require.True(t, changed)

	after := s.List()
	assert.Equal(t, models.StatusReview, after[0].Status)
	assert.NotSame(t, before[0], after[0], "changed issue is a new value")
	assert.Same(t, before[1], after[1], "unrelated issues keep identity")
	assert.Same(t, before[2], after[2], "unrelated issues keep identity")
	assert.Equal(t, models.StatusBacklog, before[0].Status, "old snapshot is untouched")

	reviewCount := 0
	for _, i := range after {
		if i.Status == models.StatusReview {
			reviewCount++
		}
	}
	assert.Equal(t, 1, reviewCount)
}

func TestSetStatus_SameStatusIsNoop(t *testing.T) {
	s := newTestStore(t)
	before := s.List()

	changed := s.SetStatus("ISS-2", models.StatusInProgress)
	assert.False(t, changed)

	after := s.List()
	for i := range before {
		assert.Same(t, before[i], after[i])
	}
}

func TestSetStatus_UnknownAndInvalid(t *testing.T) {
	s := newTestStore(t)
	before := s.List()

	assert.False(t, s.SetStatus("ISS-404", models.StatusDone))
	assert.False(t, s.SetStatus("ISS-1", models.Status(0)))

	after := s.List()
	for i := range before {
		assert.Same(t, before[i], after[i])
	}
}

func TestApplyUpdate(t *testing.T) {
	s := newTestStore(t)
	before := s.List()

	assignee := "Suresh"
	office := "Electrical"
	changed := s.ApplyUpdate("ISS-1", models.IssuePatch{Assignee: &assignee, Office: &office})
	require.True(t, changed)

	got, _ := s.Get("ISS-1")
	assert.Equal(t, "Suresh", got.Assignee)
	assert.Equal(t, "Electrical", got.Office)
	assert.Equal(t, models.StatusBacklog, got.Status)

	after := s.List()
	assert.Same(t, before[1], after[1])
	assert.Same(t, before[2], after[2])
}

func TestApplyUpdate_NoopCases(t *testing.T) {
	s := newTestStore(t)
	before := s.List()

	assignee := "Mukesh"
	assert.False(t, s.ApplyUpdate("ISS-1", models.IssuePatch{Assignee: &assignee}))
	assert.False(t, s.ApplyUpdate("ISS-1", models.IssuePatch{}))
	assert.False(t, s.ApplyUpdate("ISS-404", models.IssuePatch{Assignee: &assignee}))

	after := s.List()
	for i := range before {
		assert.Same(t, before[i], after[i])
	}
}

func TestMemoryStore_ConcurrentMutations(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			st := models.Statuses()[n%4]
			s.SetStatus("ISS-1", st)
			name := "Ramesh"
			s.ApplyUpdate("ISS-2", models.IssuePatch{Assignee: &name})
			_ = s.List()
		}(n)
	}
	wg.Wait()

	got, _ := s.Get("ISS-2")
	assert.Equal(t, "Ramesh", got.Assignee)
	assert.Len(t, s.List(), 3)
}
