// Package clock converts between "HH:MM" clock text, fractional hours and
// calendar timestamps.
package clock

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/tempsynth/internal/curve"
)

const (
	DefaultDateLayout      = "2006-01-02"
	DefaultTimestampLayout = "2006-01-02 15:04"

	// absorbs float error when a minute count is recovered from hours
	minuteEpsilon = 1e-6
)

// ParseClockTime converts "HH:MM" to hours. Hours may exceed 23 for a
// next-day rollover; minutes must be in [0, 60).
func ParseClockTime(s string) (curve.TimeValue, error) {
	h, m, err := splitClock(s)
	if err != nil {
		return 0, err
	}
	return curve.TimeValue(float64(h) + float64(m)/60), nil
}

// FormatClockTime renders hours as zero-padded "HH:MM". Hours past 23 are
// printed as-is and sub-minute precision is truncated.
func FormatClockTime(v curve.TimeValue) string {
	total := int(math.Floor(float64(v)*60 + minuteEpsilon))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func splitClock(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, &curve.FormatError{Input: s, Reason: "time must be HH:MM"}
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, &curve.FormatError{Input: s, Reason: "time must be HH:MM", Err: err}
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, &curve.FormatError{Input: s, Reason: "time must be HH:MM", Err: err}
	}
	if h < 0 || m < 0 {
		return 0, 0, &curve.FormatError{Input: s, Reason: "time must not be negative"}
	}
	if m >= 60 {
		return 0, 0, &curve.FormatError{Input: s, Reason: "minutes out of range"}
	}
	return h, m, nil
}

// Calendar holds the text layouts used to read base dates and write
// timestamps, in Go reference-time notation.
type Calendar struct {
	DateLayout      string `yaml:"date_layout" json:"date_layout"`
	TimestampLayout string `yaml:"timestamp_layout" json:"timestamp_layout"`
}

func DefaultCalendar() Calendar {
	return Calendar{
		DateLayout:      DefaultDateLayout,
		TimestampLayout: DefaultTimestampLayout,
	}
}

// NormalizeCalendarDateTime combines a base date with "HH:MM" clock text.
// Hours of 24 or more advance the date by hours/24 days.
func (c Calendar) NormalizeCalendarDateTime(dateStr, timeStr string) (time.Time, error) {
	layout := c.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	date, err := time.Parse(layout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, &curve.FormatError{Input: dateStr, Reason: "date must match " + layout, Err: err}
	}
	h, m, err := splitClock(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	y, mon, d := date.Date()
	return time.Date(y, mon, d+h/24, h%24, m, 0, 0, time.UTC), nil
}

// Timestamp formats the calendar time of v on the given base date.
func (c Calendar) Timestamp(dateStr string, v curve.TimeValue) (string, error) {
	ts, err := c.NormalizeCalendarDateTime(dateStr, FormatClockTime(v))
	if err != nil {
		return "", err
	}
	layout := c.TimestampLayout
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	return ts.Format(layout), nil
}

// NormalizeCalendarDateTime uses the default calendar layouts.
func NormalizeCalendarDateTime(dateStr, timeStr string) (time.Time, error) {
	return DefaultCalendar().NormalizeCalendarDateTime(dateStr, timeStr)
}
