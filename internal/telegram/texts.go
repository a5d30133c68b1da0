package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Bananenschreck/telegram-countdown-bot/internal/domain"
)

// UI texts in English
const (
	startText = "👋 Welcome to the Countdown Bot!\n\n" +
		"Here's how to use me:\n" +
		"1. Create a countdown: /set <name> <date>\n" +
		"   Example: /set birthday 2024-12-31\n" +
		"2. Check a countdown: /countdown <name>\n" +
		"3. List all countdowns: /list\n" +
		"4. Enable daily reminders: /remind <name>\n" +
		"5. Disable daily reminders: /unremind <name>\n" +
		"6. Delete a countdown: /delete <name>\n" +
		"7. Change the timezone: /timezone <name>"

	setUsageText       = "Please provide a name and date.\nExample: /set birthday 2024-12-31"
	countdownUsageText = "Please provide a countdown name.\nExample: /countdown birthday"
	timezoneUsageText  = "Please provide a countdown name.\nExample: /timezone birthday"
	nameUsageText      = "Please provide a countdown name."

	badDateText        = "Invalid date format. Please use YYYY-MM-DD"
	badTZText          = "Invalid timezone. Example: Europe/Berlin"
	customTZPromptText = "Enter timezone (e.g., Europe/Berlin):"

	listEmptyText  = "No countdown events found."
	listHeaderText = "📋 Your countdown events:\n\n"
)

// Generic replies for storage failures; details go to the log only.
const (
	errSetText       = "An error occurred while setting the countdown."
	errCountdownText = "An error occurred while getting the countdown."
	errListText      = "An error occurred while listing countdowns."
	errReminderText  = "An error occurred while updating the reminder."
	errDeleteText    = "An error occurred while deleting the countdown."
	errTimezoneText  = "An error occurred while setting the timezone."
)

var badNameText = fmt.Sprintf(
	"Names are limited to %d characters and must not contain %q.",
	domain.MaxNameLen, domain.CallbackSeparator,
)

func createdText(name string, target time.Time) string {
	return fmt.Sprintf("✅ Countdown '%s' set for %s", name, target.UTC().Format("2006-01-02"))
}

func duplicateText(name string) string {
	return fmt.Sprintf("A countdown with name '%s' already exists.", name)
}

func notFoundText(name string) string {
	return fmt.Sprintf("No countdown found with name '%s'", name)
}

func passedText(name string) string {
	return fmt.Sprintf("❌ The event '%s' has already passed!", name)
}

func countdownText(name, tz string, p domain.Parts) string {
	return fmt.Sprintf("⏳ Countdown for '%s':\nTimezone: %s\nRemaining: %s", name, tz, p)
}

func listLineText(e domain.Event, days int) string {
	bell := "🔕"
	if e.DailyReminder {
		bell = "🔔"
	}
	return fmt.Sprintf("%s %s (%s): %d days remaining\n", bell, e.Name, e.Timezone, days)
}

func reminderToggledText(name string, enabled bool) string {
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	return fmt.Sprintf("✅ Daily reminders for '%s' have been %s.", name, state)
}

func deletedText(name string) string {
	return fmt.Sprintf("✅ Countdown '%s' has been deleted.", name)
}

func timezonePromptText(name string) string {
	return fmt.Sprintf("Select timezone for '%s':", name)
}

func timezoneSetText(name, tz string) string {
	return fmt.Sprintf("✅ Timezone for '%s' set to %s", name, tz)
}

func timezoneNotFoundText(name string) string {
	return fmt.Sprintf("❌ Countdown '%s' not found", name)
}

// commonTimezones is the fixed pick-list offered by /timezone. Any other
// valid IANA name is reachable through the Custom… flow.
var commonTimezones = []string{
	"Europe/Berlin",
	"UTC",
	"America/New_York",
	"Europe/London",
	"Asia/Tokyo",
	"Australia/Sydney",
}

// timezoneKeyboard builds one row per preset plus a Custom… row.
func timezoneKeyboard(eventName string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(commonTimezones)+1)
	for _, tz := range commonTimezones {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(tz, encodeTimezoneSelection(eventName, tz)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✍️ Custom…", encodeCustomTimezone(eventName)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// botCommands is the menu published via SetMyCommands.
func botCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "How to use the bot"},
		{Command: "set", Description: "Create a countdown: /set <name> <date>"},
		{Command: "countdown", Description: "Show remaining time"},
		{Command: "list", Description: "List this chat's countdowns"},
		{Command: "remind", Description: "Enable the daily reminder"},
		{Command: "unremind", Description: "Disable the daily reminder"},
		{Command: "delete", Description: "Delete a countdown"},
		{Command: "timezone", Description: "Change a countdown's timezone"},
	}
}
