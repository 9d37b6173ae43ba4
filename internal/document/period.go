package document

import (
	"fmt"
	"time"
)

// Genitive month names as they appear inside date phrases.
var months = [...]string{
	"января",
	"февраля",
	"марта",
	"апреля",
	"мая",
	"июня",
	"июля",
	"августа",
	"сентября",
	"октября",
	"ноября",
	"декабря",
}

func monthName(m time.Month) string {
	return months[int(m)-1]
}

// FormatPeriod renders a trip date range as the document phrase, e.g.
// "с 3 по 5 марта 2020 года". Day numbers carry no leading zero. The phrase
// shortens as far as the range allows: a single date, same month, same year,
// or the full form when the years differ.
func FormatPeriod(start, end time.Time) string {
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return fmt.Sprintf("%d %s %d года", start.Day(), monthName(start.Month()), start.Year())
	}
	if start.Year() == end.Year() {
		if start.Month() == end.Month() {
			return fmt.Sprintf("с %d по %d %s %d года",
				start.Day(), end.Day(), monthName(end.Month()), end.Year())
		}
		return fmt.Sprintf("с %d %s по %d %s %d года",
			start.Day(), monthName(start.Month()),
			end.Day(), monthName(end.Month()), end.Year())
	}
	return fmt.Sprintf("с %d %s %d года по %d %s %d года",
		start.Day(), monthName(start.Month()), start.Year(),
		end.Day(), monthName(end.Month()), end.Year())
}
