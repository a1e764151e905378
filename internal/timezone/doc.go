// Package timezone resolves the configured UTC offset and derives
// timezone-shifted instants, calendar-day windows and Gmail date literals
// from it. It is pure arithmetic on absolute instants; the host timezone
// is never consulted.
package timezone
