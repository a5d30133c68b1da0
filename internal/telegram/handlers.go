package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Bananenschreck/telegram-countdown-bot/internal/domain"
	"github.com/Bananenschreck/telegram-countdown-bot/internal/store"
)

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) editText(chatID int64, messageID int, text string) {
	_, _ = r.bot.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
}

func (r *Router) answerCallback(id string) {
	_, _ = r.bot.Request(tgbotapi.NewCallback(id, ""))
}

// eventLocation resolves the event's timezone, falling back to UTC.
// Stored zones are validated on write, so failures here are unexpected.
func (r *Router) eventLocation(e *domain.Event) *time.Location {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		r.log.Warn("load event timezone failed",
			zap.String("name", e.Name), zap.String("tz", e.Timezone), zap.Error(err))
		return time.UTC
	}
	return loc
}

// --- Commands ---

func (r *Router) handleStart(chatID int64) {
	r.sendText(chatID, startText)
}

func (r *Router) handleSet(ctx context.Context, chatID, userID int64, args []string) {
	if len(args) < 2 {
		r.sendText(chatID, setUsageText)
		return
	}
	name := args[0]

	if err := domain.ValidateName(name); err != nil {
		r.sendText(chatID, badNameText)
		return
	}
	target, err := domain.ParseTargetDate(args[1])
	if err != nil {
		r.sendText(chatID, badDateText)
		return
	}

	e := &domain.Event{
		Name:       name,
		TargetDate: target,
		ChatID:     chatID,
		CreatedBy:  userID,
		CreatedAt:  time.Now().UTC(),
		Timezone:   r.defaultTZ,
	}
	if err := r.repo.CreateEvent(ctx, e); err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			r.sendText(chatID, duplicateText(name))
			return
		}
		r.log.Error("create event failed", zap.Error(err), zap.String("name", name))
		r.sendText(chatID, errSetText)
		return
	}
	r.sendText(chatID, createdText(name, target))
}

func (r *Router) handleCountdown(ctx context.Context, chatID int64, args []string) {
	if len(args) < 1 {
		r.sendText(chatID, countdownUsageText)
		return
	}
	name := args[0]

	e, err := r.repo.GetEvent(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.sendText(chatID, notFoundText(name))
			return
		}
		r.log.Error("get event failed", zap.Error(err), zap.String("name", name))
		r.sendText(chatID, errCountdownText)
		return
	}

	remaining := domain.Remaining(e.TargetDate, r.eventLocation(e), time.Now())
	if remaining < 0 {
		r.sendText(chatID, passedText(e.Name))
		return
	}
	r.sendText(chatID, countdownText(e.Name, e.Timezone, domain.Split(remaining)))
}

func (r *Router) handleList(ctx context.Context, chatID int64) {
	events, err := r.repo.ListChatEvents(ctx, chatID)
	if err != nil {
		r.log.Error("list events failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, errListText)
		return
	}
	if len(events) == 0 {
		r.sendText(chatID, listEmptyText)
		return
	}

	now := time.Now()
	var b strings.Builder
	b.WriteString(listHeaderText)
	for i := range events {
		e := &events[i]
		days := domain.WholeDays(domain.Remaining(e.TargetDate, r.eventLocation(e), now))
		b.WriteString(listLineText(*e, days))
	}
	r.sendText(chatID, b.String())
}

func (r *Router) handleRemind(ctx context.Context, chatID int64, args []string, enabled bool) {
	if len(args) < 1 {
		r.sendText(chatID, nameUsageText)
		return
	}
	name := args[0]

	if err := r.repo.SetReminder(ctx, name, enabled); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.sendText(chatID, notFoundText(name))
			return
		}
		r.log.Error("set reminder failed", zap.Error(err), zap.String("name", name))
		r.sendText(chatID, errReminderText)
		return
	}
	r.sendText(chatID, reminderToggledText(name, enabled))
}

func (r *Router) handleDelete(ctx context.Context, chatID int64, args []string) {
	if len(args) < 1 {
		r.sendText(chatID, nameUsageText)
		return
	}
	name := args[0]

	if err := r.repo.DeleteEvent(ctx, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.sendText(chatID, notFoundText(name))
			return
		}
		r.log.Error("delete event failed", zap.Error(err), zap.String("name", name))
		r.sendText(chatID, errDeleteText)
		return
	}
	r.sendText(chatID, deletedText(name))
}

// --- Timezone flow ---

func (r *Router) handleTimezone(ctx context.Context, chatID int64, args []string) {
	if len(args) < 1 {
		r.sendText(chatID, timezoneUsageText)
		return
	}
	name := args[0]

	if _, err := r.repo.GetEvent(ctx, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.sendText(chatID, notFoundText(name))
			return
		}
		r.log.Error("get event failed", zap.Error(err), zap.String("name", name))
		r.sendText(chatID, errTimezoneText)
		return
	}

	msg := tgbotapi.NewMessage(chatID, timezonePromptText(name))
	msg.ReplyMarkup = timezoneKeyboard(name)
	_, _ = r.bot.Send(msg)
}

// handleTimezoneCallback applies a preset selection and edits the prompt
// message in place.
func (r *Router) handleTimezoneCallback(ctx context.Context, chatID int64, messageID int, data, cbID string) {
	r.answerCallback(cbID)

	sel, err := parseTimezoneSelection(data)
	if err != nil {
		r.log.Debug("ignoring malformed callback", zap.String("data", data))
		return
	}
	tz, err := domain.ValidateTZ(sel.Timezone)
	if err != nil {
		r.log.Debug("ignoring callback with unknown timezone", zap.String("data", data))
		return
	}

	if err := r.repo.SetTimezone(ctx, sel.Name, tz); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.editText(chatID, messageID, timezoneNotFoundText(sel.Name))
			return
		}
		r.log.Error("set timezone failed", zap.Error(err), zap.String("name", sel.Name))
		r.editText(chatID, messageID, errTimezoneText)
		return
	}
	r.editText(chatID, messageID, timezoneSetText(sel.Name, tz))
}

// handleCustomTimezoneCallback arms the pending flow; the next plain message
// in the chat is treated as a timezone name.
func (r *Router) handleCustomTimezoneCallback(chatID int64, data, cbID string) {
	r.answerCallback(cbID)

	name, err := parseCustomTimezone(data)
	if err != nil {
		r.log.Debug("ignoring malformed callback", zap.String("data", data))
		return
	}
	r.setPending(chatID, name)
	r.sendText(chatID, customTZPromptText)
}

// handleFreeForm consumes the typed timezone when the custom flow is armed;
// all other plain text is ignored.
func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	if text == "" {
		return
	}
	name, ok := r.getPending(chatID)
	if !ok {
		return
	}
	r.clearPending(chatID)

	tz, err := domain.ValidateTZ(text)
	if err != nil {
		r.sendText(chatID, badTZText)
		return
	}
	if err := r.repo.SetTimezone(ctx, name, tz); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.sendText(chatID, timezoneNotFoundText(name))
			return
		}
		r.log.Error("set timezone failed", zap.Error(err), zap.String("name", name))
		r.sendText(chatID, errTimezoneText)
		return
	}
	r.sendText(chatID, timezoneSetText(name, tz))
}
