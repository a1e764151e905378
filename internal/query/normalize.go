package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/mailfold/mailfold/internal/timezone"
)

// Request carries the user-facing search parameters that influence the
// canonical query.
type Request struct {
	// Text is the raw free-text Gmail query, possibly empty.
	Text string

	// TimeFilter, when set, wins over everything else including explicit
	// date literals embedded in Text.
	TimeFilter TimeFilter

	// Hours restricts to a rolling window of the last Hours hours. Only
	// consulted when TimeFilter is unset and Text carries no explicit
	// date-range operator. Zero means unset.
	Hours float64

	// Category is the inbox section to restrict to. Never rendered into
	// the query text.
	Category Category

	// DefaultToToday selects the fallback when no time signal is present
	// at all: true appends today's calendar range ("get recent" must never
	// issue an unbounded query), false leaves the query unrestricted
	// ("search" honors the absence of a time signal).
	DefaultToToday bool
}

// Canonical is the normalized query: free text plus resolved absolute time
// bounds, kept apart until the final boundary call so a date clause can
// never be appended twice. After/Before are absolute Unix seconds; zero
// means unbounded on that side.
type Canonical struct {
	Text     string
	After    int64
	Before   int64
	Category Category
}

// Query serializes the canonical form into Gmail's textual syntax. The
// category is intentionally absent: it travels as a structured filter.
func (c Canonical) Query() string {
	parts := make([]string, 0, 3)
	if c.Text != "" {
		parts = append(parts, c.Text)
	}
	if c.After > 0 {
		parts = append(parts, fmt.Sprintf("after:%d", c.After))
	}
	if c.Before > 0 {
		parts = append(parts, fmt.Sprintf("before:%d", c.Before))
	}
	return strings.Join(parts, " ")
}

// Normalizer turns raw search parameters into one canonical query,
// resolving the precedence between competing time specifications.
type Normalizer struct {
	clock *timezone.Clock
}

// NewNormalizer builds a Normalizer on the given clock.
func NewNormalizer(clock *timezone.Clock) *Normalizer {
	return &Normalizer{clock: clock}
}

// Normalize resolves req into a Canonical query. The precedence is, first
// match wins:
//
//  1. timeFilter today/yesterday: that day's calendar range, overriding any
//     date literal already present in the text.
//  2. timeFilter last24h: rolling after:<now-24h>.
//  3. an explicit date-range operator in the (translated) text: untouched.
//  4. Hours: rolling after:<now-Hours>.
//  5. DefaultToToday: today's calendar range; otherwise unbounded.
//
// Before any of that, the deprecated is:unread token is rewritten to
// label:unread and human date literals are translated to epoch seconds.
func (n *Normalizer) Normalize(req Request) Canonical {
	text := strings.ReplaceAll(req.Text, "is:unread", "label:unread")
	text = n.TranslateDateOperators(text)
	text = strings.TrimSpace(text)

	c := Canonical{Text: text, Category: req.Category}

	switch req.TimeFilter {
	case TimeFilterToday:
		c.After, c.Before = n.clock.CalendarDayRange(0)
		return c
	case TimeFilterYesterday:
		c.After, c.Before = n.clock.CalendarDayRange(-1)
		return c
	case TimeFilterLast24h:
		c.After = n.clock.Now().Add(-24 * time.Hour).Unix()
		return c
	}

	if HasDateOperator(text) {
		// The user's explicit literal wins when no filter competes.
		return c
	}

	if req.Hours > 0 {
		c.After = n.clock.Now().Add(-time.Duration(req.Hours * float64(time.Hour))).Unix()
		return c
	}

	if req.DefaultToToday {
		c.After, c.Before = n.clock.CalendarDayRange(0)
	}
	return c
}
