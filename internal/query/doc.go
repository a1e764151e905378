// Package query normalizes user-facing search parameters (free text, time
// filters, rolling hour windows, inbox categories) into one canonical
// Gmail query. It owns the precedence between competing time
// specifications and the rewriting of human date literals into the epoch
// form the Gmail API requires.
package query
