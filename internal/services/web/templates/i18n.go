package templates

import (
	"fmt"
	"time"

	"golang.org/x/text/message"
)

// Localizer provides translated strings for components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}

// VerseCount renders "N verse(s)" with the singular form for one.
func VerseCount(loc Localizer, n int) string {
	if n == 1 {
		return T(loc, "web.stories.verse_count_one", n)
	}
	return T(loc, "web.stories.verse_count_other", n)
}

var weekdayKeys = [...]string{
	"web.date.weekday.sunday",
	"web.date.weekday.monday",
	"web.date.weekday.tuesday",
	"web.date.weekday.wednesday",
	"web.date.weekday.thursday",
	"web.date.weekday.friday",
	"web.date.weekday.saturday",
}

var monthKeys = [...]string{
	"web.date.month.january",
	"web.date.month.february",
	"web.date.month.march",
	"web.date.month.april",
	"web.date.month.may",
	"web.date.month.june",
	"web.date.month.july",
	"web.date.month.august",
	"web.date.month.september",
	"web.date.month.october",
	"web.date.month.november",
	"web.date.month.december",
}

// LongDate formats day as a localized "weekday, month day, year".
func LongDate(loc Localizer, day time.Time) string {
	weekday := T(loc, weekdayKeys[day.Weekday()])
	month := T(loc, monthKeys[day.Month()-1])
	return T(loc, "web.date.long", weekday, month, day.Day(), day.Year())
}
