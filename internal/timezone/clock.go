package timezone

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"
)

// secondsPerDay is the length of a calendar day window.
const secondsPerDay = 86400

// offsetPattern matches the configured timezone string, e.g. "GMT+2",
// "GMT-8" or "GMT+5.5". Fractional hours are allowed for half-hour zones.
var offsetPattern = regexp.MustCompile(`^GMT([+-]\d+(?:\.\d+)?)$`)

// ParseOffset parses a "GMT[+-]<hours>" string into a signed hour offset.
func ParseOffset(s string) (float64, error) {
	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid timezone %q, expected GMT[+-]<hours>", s)
	}
	hours, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timezone offset %q: %w", m[1], err)
	}
	return hours, nil
}

// Clock resolves the configured UTC offset and derives timezone-shifted
// instants, calendar-day windows and date literals from it. All arithmetic
// is done on absolute instants so behavior does not depend on the host's
// local timezone. A Clock is immutable after construction and safe for
// concurrent use.
type Clock struct {
	offset   time.Duration
	degraded bool
	now      func() time.Time
}

// Option configures a Clock.
type Option func(*Clock)

// WithNowFunc overrides the time source. Used by tests to pin "now".
func WithNowFunc(fn func() time.Time) Option {
	return func(c *Clock) {
		c.now = fn
	}
}

// New builds a Clock from the raw configured timezone string. A malformed
// or empty value degrades to UTC with a warning; it never fails, so a bad
// deployment config cannot take the server down.
func New(raw string, logger *slog.Logger, opts ...Option) *Clock {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Clock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	if raw == "" {
		return c
	}

	hours, err := ParseOffset(raw)
	if err != nil {
		logger.Warn("malformed timezone configuration, falling back to UTC",
			slog.String("timezone", raw),
			slog.String("error", err.Error()))
		c.degraded = true
		return c
	}

	c.offset = time.Duration(hours * float64(time.Hour))
	return c
}

// OffsetHours returns the configured offset in hours.
func (c *Clock) OffsetHours() float64 {
	return c.offset.Hours()
}

// Degraded reports whether the configured timezone was malformed and the
// clock fell back to UTC.
func (c *Clock) Degraded() bool {
	return c.degraded
}

// Now returns the current absolute instant in UTC.
func (c *Clock) Now() time.Time {
	return c.now().UTC()
}

// NowShifted returns the current instant moved by the configured offset.
// The result is still expressed in the UTC frame; its Y/M/D fields are the
// calendar date in the configured timezone.
func (c *Clock) NowShifted() time.Time {
	return c.Now().Add(c.offset)
}

// CalendarDayRange returns the [midnight, midnight+24h) window for the
// calendar day dayOffset days away from today in the configured timezone,
// as absolute Unix seconds. dayOffset 0 is today, -1 yesterday.
func (c *Clock) CalendarDayRange(dayOffset int) (start, end int64) {
	shifted := c.NowShifted().AddDate(0, 0, dayOffset)
	midnight := time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, time.UTC)
	start = midnight.Add(-c.offset).Unix()
	return start, start + secondsPerDay
}

// FormatDate renders a shifted instant as the YYYY/MM/DD literal Gmail
// uses in date operators.
func (c *Clock) FormatDate(t time.Time) string {
	return t.Format("2006/01/02")
}

// DateToUnix converts a YYYY/MM/DD literal (1–2 digit month/day accepted)
// to the absolute Unix seconds of that date's midnight in the configured
// timezone. This is the same calendar basis as CalendarDayRange.
func (c *Clock) DateToUnix(literal string) (int64, error) {
	var year, month, day int
	if _, err := fmt.Sscanf(literal, "%d/%d/%d", &year, &month, &day); err != nil {
		return 0, fmt.Errorf("invalid date literal %q: %w", literal, err)
	}
	if year < 1000 || month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid date literal %q", literal)
	}
	midnight := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return midnight.Add(-c.offset).Unix(), nil
}
