package normalize

import (
	"strings"

	"github.com/bebektakip/carefinder/internal/domain/entities"
)

var dayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

const (
	defaultOpenTime  = "09:00"
	defaultCloseTime = "17:00"
)

// ParseWeeklyHours turns the provider's 7 weekday description strings
// (index 0 = Monday) into working-hours entries. Anything it cannot parse
// becomes a default-open entry; missing schedule text yields the canonical
// Mon–Fri default week.
func ParseWeeklyHours(descriptions []string) []entities.WorkingHours {
	if len(descriptions) != 7 {
		return DefaultWeeklyHours()
	}

	hours := make([]entities.WorkingHours, 7)
	for i, desc := range descriptions {
		hours[i] = parseDayEntry(dayNames[i], desc)
	}
	return hours
}

// DefaultWeeklyHours returns the canonical week: Mon–Fri open 09:00–17:00,
// weekend closed.
func DefaultWeeklyHours() []entities.WorkingHours {
	hours := make([]entities.WorkingHours, 7)
	for i, day := range dayNames {
		if i < 5 {
			hours[i] = entities.WorkingHours{Day: day, Start: defaultOpenTime, End: defaultCloseTime, IsOpen: true}
		} else {
			hours[i] = entities.WorkingHours{Day: day, IsOpen: false}
		}
	}
	return hours
}

func parseDayEntry(day, desc string) entities.WorkingHours {
	if containsFold(desc, "closed") || containsFold(desc, "kapalı") {
		return entities.WorkingHours{Day: day, IsOpen: false}
	}

	// "Monday: 9:00 AM – 5:00 PM" → isolate the range after the first ": ".
	timeRange := desc
	if _, rest, found := strings.Cut(desc, ": "); found {
		timeRange = rest
	}

	tokens := strings.Split(timeRange, "–")
	if len(tokens) == 2 {
		return entities.WorkingHours{
			Day:    day,
			Start:  trimTimeToken(tokens[0]),
			End:    trimTimeToken(tokens[1]),
			IsOpen: true,
		}
	}

	return entities.WorkingHours{Day: day, Start: defaultOpenTime, End: defaultCloseTime, IsOpen: true}
}

// trimTimeToken strips spaces including the narrow no-break spaces the
// provider puts around its dashes.
func trimTimeToken(s string) string {
	return strings.Trim(s, " \t\u202f\u2009")
}
