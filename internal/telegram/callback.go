package telegram

import (
	"fmt"
	"strings"

	"github.com/Bananenschreck/telegram-countdown-bot/internal/domain"
)

// Callback payload prefixes.
const (
	cbTimezone       = "tz"  // tz|<name>|<zone> — apply zone to the named event
	cbCustomTimezone = "tzc" // tzc|<name> — ask the user to type a zone
)

// timezoneSelection is the decoded payload of a timezone keyboard press.
type timezoneSelection struct {
	Name     string
	Timezone string
}

// encodeTimezoneSelection packs an event name and zone into callback data.
// Unambiguous because the separator is rejected in names at create time.
func encodeTimezoneSelection(name, tz string) string {
	return strings.Join([]string{cbTimezone, name, tz}, domain.CallbackSeparator)
}

func encodeCustomTimezone(name string) string {
	return strings.Join([]string{cbCustomTimezone, name}, domain.CallbackSeparator)
}

// parseTimezoneSelection decodes tz|<name>|<zone> and fails on anything else.
func parseTimezoneSelection(data string) (timezoneSelection, error) {
	parts := strings.Split(data, domain.CallbackSeparator)
	if len(parts) != 3 || parts[0] != cbTimezone || parts[1] == "" || parts[2] == "" {
		return timezoneSelection{}, fmt.Errorf("malformed timezone callback %q", data)
	}
	return timezoneSelection{Name: parts[1], Timezone: parts[2]}, nil
}

// parseCustomTimezone decodes tzc|<name> and fails on anything else.
func parseCustomTimezone(data string) (string, error) {
	parts := strings.Split(data, domain.CallbackSeparator)
	if len(parts) != 2 || parts[0] != cbCustomTimezone || parts[1] == "" {
		return "", fmt.Errorf("malformed custom timezone callback %q", data)
	}
	return parts[1], nil
}
