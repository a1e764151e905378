// Package search composes query normalization and page aggregation into
// the user-facing "search" and "get recent" operations, including the
// zero-result narration and continuation hints.
package search
