package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Bananenschreck/telegram-countdown-bot/internal/domain"
	"github.com/Bananenschreck/telegram-countdown-bot/internal/store"
)

// Sender is a minimal interface the scheduler needs to send a text message.
// telegram.Router implements it.
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Scheduler fires once a day at a fixed wall-clock time and pushes a reminder
// for every event that opted in.
type Scheduler struct {
	repo   store.Repo
	log    *zap.Logger
	sender Sender
	hour   int
	minute int
	loc    *time.Location
}

// New creates a Scheduler firing daily at hour:minute in loc.
func New(repo store.Repo, log *zap.Logger, sender Sender, hour, minute int, loc *time.Location) *Scheduler {
	return &Scheduler{
		repo:   repo,
		log:    log,
		sender: sender,
		hour:   hour,
		minute: minute,
		loc:    loc,
	}
}

// Run sleeps until the next trigger and repeats until ctx is canceled.
// Triggers missed while the process was down are skipped, not replayed.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := nextTrigger(time.Now().In(s.loc), s.hour, s.minute)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("scheduler stopping")
			return
		case <-timer.C:
			s.notify(ctx)
		}
	}
}

// nextTrigger returns the first hour:minute instant after now, in now's
// location. The next day is built from calendar components, not by adding
// 24 hours: across a DST change those differ, and the trigger must stay at
// the same wall-clock time with one run per calendar day.
func nextTrigger(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, minute, 0, 0, now.Location())
	}
	return next
}

// notify performs one reminder pass. Events whose date has passed are
// skipped; a failed send is logged and does not stop the pass.
func (s *Scheduler) notify(ctx context.Context) {
	events, err := s.repo.ListReminderEvents(ctx)
	if err != nil {
		s.log.Error("list reminder events failed", zap.Error(err))
		return
	}

	now := time.Now()
	sent := 0
	for _, e := range events {
		loc, err := time.LoadLocation(e.Timezone)
		if err != nil {
			s.log.Warn("load event timezone failed",
				zap.String("name", e.Name), zap.String("tz", e.Timezone), zap.Error(err))
			loc = time.UTC
		}
		remaining := domain.Remaining(e.TargetDate, loc, now)
		if remaining < 0 {
			continue
		}
		if err := s.sender.SendMessage(e.ChatID, reminderText(e, domain.Split(remaining))); err != nil {
			s.log.Error("send reminder failed",
				zap.Error(err), zap.String("name", e.Name), zap.Int64("chatID", e.ChatID))
			continue
		}
		sent++
	}
	s.log.Info("reminder pass finished", zap.Int("events", len(events)), zap.Int("sent", sent))
}

func reminderText(e domain.Event, p domain.Parts) string {
	return fmt.Sprintf("⏰ Daily Reminder for '%s':\nTimezone: %s\nRemaining: %s", e.Name, e.Timezone, p)
}
