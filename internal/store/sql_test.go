package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Bananenschreck/telegram-countdown-bot/internal/domain"
	"github.com/Bananenschreck/telegram-countdown-bot/internal/store"
)

func openRepo(t *testing.T) *store.SQLRepo {
	t.Helper()
	repo, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "countdown.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, repo.Close()) })
	return repo
}

func newEvent(name string, chatID int64) *domain.Event {
	return &domain.Event{
		Name:       name,
		TargetDate: time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
		ChatID:     chatID,
		CreatedBy:  chatID + 1000,
		CreatedAt:  time.Date(2026, time.August, 1, 12, 30, 0, 0, time.UTC),
		Timezone:   "UTC",
	}
}

func TestCreateAndGetEvent(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	e := newEvent("birthday", 7)
	require.NoError(t, repo.CreateEvent(ctx, e))
	require.NotZero(t, e.ID)

	got, err := repo.GetEvent(ctx, "birthday")
	require.NoError(t, err)
	require.Equal(t, *e, *got)
	require.False(t, got.DailyReminder)
}

func TestCreateEvent_DuplicateName(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateEvent(ctx, newEvent("launch", 1)))

	// Same name from a different chat still collides: names are global.
	dup := newEvent("launch", 2)
	dup.Timezone = "Asia/Tokyo"
	err := repo.CreateEvent(ctx, dup)
	require.ErrorIs(t, err, store.ErrDuplicateName)

	got, err := repo.GetEvent(ctx, "launch")
	require.NoError(t, err)
	require.Equal(t, int64(1), got.ChatID)
	require.Equal(t, "UTC", got.Timezone)
}

func TestGetEvent_NotFound(t *testing.T) {
	repo := openRepo(t)

	_, err := repo.GetEvent(context.Background(), "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListChatEvents_ScopedAndOrdered(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateEvent(ctx, newEvent("first", 1)))
	require.NoError(t, repo.CreateEvent(ctx, newEvent("other-chat", 2)))
	require.NoError(t, repo.CreateEvent(ctx, newEvent("second", 1)))

	events, err := repo.ListChatEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "first", events[0].Name)
	require.Equal(t, "second", events[1].Name)

	events, err = repo.ListChatEvents(ctx, 3)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestSetReminder(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateEvent(ctx, newEvent("quiet", 1)))
	require.NoError(t, repo.CreateEvent(ctx, newEvent("loud", 1)))
	require.NoError(t, repo.SetReminder(ctx, "loud", true))

	events, err := repo.ListReminderEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "loud", events[0].Name)
	require.True(t, events[0].DailyReminder)

	require.NoError(t, repo.SetReminder(ctx, "loud", false))
	events, err = repo.ListReminderEvents(ctx)
	require.NoError(t, err)
	require.Empty(t, events)

	require.ErrorIs(t, repo.SetReminder(ctx, "missing", true), store.ErrNotFound)
}

func TestSetTimezone(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateEvent(ctx, newEvent("trip", 1)))
	require.NoError(t, repo.SetTimezone(ctx, "trip", "Australia/Sydney"))

	got, err := repo.GetEvent(ctx, "trip")
	require.NoError(t, err)
	require.Equal(t, "Australia/Sydney", got.Timezone)

	require.ErrorIs(t, repo.SetTimezone(ctx, "missing", "UTC"), store.ErrNotFound)
}

func TestDeleteEvent(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateEvent(ctx, newEvent("temp", 1)))
	require.NoError(t, repo.DeleteEvent(ctx, "temp"))

	_, err := repo.GetEvent(ctx, "temp")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, repo.DeleteEvent(ctx, "temp"), store.ErrNotFound)
}
