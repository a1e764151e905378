package query

import "fmt"

// TimeFilter is a named, calendar-aware time restriction selected by the
// caller. The zero value means "no filter".
type TimeFilter string

const (
	TimeFilterNone      TimeFilter = ""
	TimeFilterToday     TimeFilter = "today"
	TimeFilterYesterday TimeFilter = "yesterday"
	TimeFilterLast24h   TimeFilter = "last24h"
)

// ParseTimeFilter validates a raw timeFilter argument.
func ParseTimeFilter(s string) (TimeFilter, error) {
	switch TimeFilter(s) {
	case TimeFilterNone, TimeFilterToday, TimeFilterYesterday, TimeFilterLast24h:
		return TimeFilter(s), nil
	}
	return TimeFilterNone, fmt.Errorf("invalid timeFilter %q (valid: today, yesterday, last24h)", s)
}

// Category is a Gmail inbox section. Categories are a provider concept
// distinct from labels: a category selects one of the fixed inbox tabs,
// while a label is a user or system tag. The two must never be
// cross-substituted, so a Category is carried as a structured filter and
// never rendered into the query text.
type Category string

const (
	CategoryNone       Category = ""
	CategoryPrimary    Category = "primary"
	CategorySocial     Category = "social"
	CategoryPromotions Category = "promotions"
	CategoryUpdates    Category = "updates"
	CategoryForums     Category = "forums"
)

// ParseCategory validates a raw category argument.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryNone, CategoryPrimary, CategorySocial, CategoryPromotions, CategoryUpdates, CategoryForums:
		return Category(s), nil
	}
	return CategoryNone, fmt.Errorf("invalid category %q (valid: primary, social, promotions, updates, forums)", s)
}
