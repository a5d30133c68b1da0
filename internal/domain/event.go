package domain

import "time"

// Event is a named countdown toward a calendar date.
type Event struct {
	ID            int64
	Name          string    // unique across all chats
	TargetDate    time.Time // 00:00 UTC marker of the target calendar date
	ChatID        int64     // origin chat; reminders are delivered here
	CreatedBy     int64     // user who created the event
	DailyReminder bool
	CreatedAt     time.Time // UTC
	Timezone      string    // IANA name the countdown is computed in
}
