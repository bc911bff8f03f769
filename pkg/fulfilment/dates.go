package fulfilment

import (
	"errors"
	"strings"
	"time"
)

// DeliveryDateFormat is the external date format for explicit delivery dates
// and for the date token of generated filenames.
const DeliveryDateFormat = "2006-01-02"

// Error constants and variables
const (
	ErrMsgInvalidDateFormat = "fulfilment: invalid delivery date format"
	ErrMsgMissingDateInput  = "fulfilment: missing delivery date input"
	ErrMsgInvalidWeekday    = "fulfilment: invalid weekday name"
)

var (
	ErrInvalidDateFormat = errors.New(ErrMsgInvalidDateFormat)
	ErrMissingDateInput  = errors.New(ErrMsgMissingDateInput)
	ErrInvalidWeekday    = errors.New(ErrMsgInvalidWeekday)
)

// weekdays maps lowercased full names and 3-letter codes for all 7 days.
var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

// DeliveryDateInput carries either an explicit date or a weekday rule.
type DeliveryDateInput struct {
	Date             string // explicit YYYY-MM-DD, wins when set
	Weekday          string // target weekday name, e.g. "friday" or "fri"
	MinDaysInAdvance int    // minimum days between now and the delivery date
}

// ResolveDeliveryDate produces the single delivery date for a run, either by
// strict-parsing an explicit date or by finding the earliest occurrence of
// the requested weekday on or after now + MinDaysInAdvance.
func ResolveDeliveryDate(in DeliveryDateInput, now time.Time) (time.Time, error) {
	if in.Date != "" {
		return ParseDeliveryDate(in.Date)
	}

	if in.Weekday != "" {
		day, err := ParseWeekday(in.Weekday)
		if err != nil {
			return time.Time{}, err
		}
		return NextDeliveryDay(now, day, in.MinDaysInAdvance), nil
	}

	return time.Time{}, ErrMissingDateInput
}

// ParseDeliveryDate strictly parses a YYYY-MM-DD date string. Impossible
// calendar dates (month 14, day 32) fail the same way malformed input does.
func ParseDeliveryDate(s string) (time.Time, error) {
	d, err := time.Parse(DeliveryDateFormat, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return d, nil
}

// ParseWeekday resolves a weekday name. Matching is case-insensitive and
// accepts full names and 3-letter codes.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return time.Sunday, ErrInvalidWeekday
	}
	return day, nil
}

// NextDeliveryDay computes the earliest date that is on or after
// now + minDays and falls on the requested weekday. When the current week's
// occurrence lands before the threshold, this advances exactly one week.
func NextDeliveryDay(now time.Time, day time.Weekday, minDays int) time.Time {
	if minDays < 0 {
		minDays = 0
	}
	min := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, minDays)
	offset := (int(day) - int(min.Weekday()) + 7) % 7
	return min.AddDate(0, 0, offset)
}

// ChargeDay is the weekday name of the delivery date, used for labeling.
func ChargeDay(date time.Time) string {
	return date.Weekday().String()
}
