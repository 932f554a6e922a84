package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/launchbay/studiopool/internal/domain/event"
	"github.com/stretchr/testify/require"
)

func appendEvent(t *testing.T, repo *EventRepository, evtType event.Type, entityID string, metadata map[string]any) *event.Event {
	t.Helper()
	evt := &event.Event{
		Type:        evtType,
		EntityID:    entityID,
		TriggeredBy: "tester",
		Metadata:    metadata,
		Timestamp:   time.Now(),
	}
	require.NoError(t, repo.Append(context.Background(), evt))
	return evt
}

func TestEventRepository_AppendAssignsID(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)

	first := appendEvent(t, repo, event.TypeProjectCreated, "p1", nil)
	second := appendEvent(t, repo, event.TypeProjectOnboarded, "p1", map[string]any{"slot": 3})

	require.NotZero(t, first.ID)
	require.Greater(t, second.ID, first.ID)
}

func TestEventRepository_ListNewestFirst(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)

	proj := newActive("p1", "Nimbus", 1, 1)
	evt := &event.Event{
		Type:      event.TypeProjectCreated,
		EntityID:  "p1",
		Entity:    proj,
		Timestamp: time.Now(),
	}
	require.NoError(t, repo.Append(context.Background(), evt))
	appendEvent(t, repo, event.TypeProjectGraduated, "p1", map[string]any{"freed_slot": 1, "reason": "acquired"})

	events, err := repo.List(context.Background(), event.ListOptions{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, event.TypeProjectGraduated, events[0].Type)
	require.Equal(t, "acquired", events[0].Metadata["reason"])
	require.Equal(t, event.TypeProjectCreated, events[1].Type)
	require.NotNil(t, events[1].Entity)
	require.Equal(t, "Nimbus", events[1].Entity.Name)
}

func TestEventRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	appendEvent(t, repo, event.TypeProjectCreated, "p1", nil)
	appendEvent(t, repo, event.TypeProjectCreated, "p2", nil)
	appendEvent(t, repo, event.TypeProjectOnboarded, "p2", nil)

	byEntity, err := repo.List(ctx, event.ListOptions{EntityID: "p2"})
	require.NoError(t, err)
	require.Len(t, byEntity, 2)

	created := event.TypeProjectCreated
	byType, err := repo.List(ctx, event.ListOptions{Type: &created})
	require.NoError(t, err)
	require.Len(t, byType, 2)

	both, err := repo.List(ctx, event.ListOptions{EntityID: "p2", Type: &created})
	require.NoError(t, err)
	require.Len(t, both, 1)
	require.Equal(t, "p2", both[0].EntityID)
}

func TestEventRepository_ListLimitAndOffset(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		appendEvent(t, repo, event.TypeProjectCreated, "p1", map[string]any{"n": i})
	}

	page, err := repo.List(ctx, event.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)

	next, err := repo.List(ctx, event.ListOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, next, 2)
	require.Greater(t, page[1].ID, next[0].ID)
}
