package store

import (
	"context"
	"errors"

	"github.com/Bananenschreck/telegram-countdown-bot/internal/domain"
)

var (
	// ErrNotFound is returned when no event with the given name exists.
	ErrNotFound = errors.New("event not found")
	// ErrDuplicateName is returned when creating an event whose name is taken.
	ErrDuplicateName = errors.New("event name already exists")
)

// Repo defines storage operations for countdown events.
// Name lookups are global; only ListChatEvents is scoped to a chat.
type Repo interface {
	CreateEvent(ctx context.Context, e *domain.Event) error
	GetEvent(ctx context.Context, name string) (*domain.Event, error)
	ListChatEvents(ctx context.Context, chatID int64) ([]domain.Event, error)
	ListReminderEvents(ctx context.Context) ([]domain.Event, error)
	SetTimezone(ctx context.Context, name, tz string) error
	SetReminder(ctx context.Context, name string, enabled bool) error
	DeleteEvent(ctx context.Context, name string) error
	Close() error
}
