package query

import (
	"fmt"
	"regexp"
	"strings"
)

// dateOperatorPattern matches human date literals in after:/before: tokens:
// a 4-digit year and 1–2 digit month and day. Already-numeric operators
// (after:1742083200) deliberately do not match, which makes translation
// idempotent.
var dateOperatorPattern = regexp.MustCompile(`\b(after|before):(\d{4}/\d{1,2}/\d{1,2})`)

// rangeOperators are the Gmail operators that constrain a query in time.
// Their presence means the user already restricted the range explicitly.
var rangeOperators = []string{"after:", "before:", "newer_than:", "older_than:"}

// TranslateDateOperators rewrites after:YYYY/MM/DD and before:YYYY/MM/DD
// tokens into the epoch-seconds form the messages.list API requires,
// interpreting each literal as midnight of that date in the configured
// timezone. Everything else passes through untouched.
func (n *Normalizer) TranslateDateOperators(q string) string {
	return dateOperatorPattern.ReplaceAllStringFunc(q, func(token string) string {
		m := dateOperatorPattern.FindStringSubmatch(token)
		unix, err := n.clock.DateToUnix(m[2])
		if err != nil {
			// Matched the pattern but not a real date (e.g. month 13).
			// Leave it for Gmail to reject.
			return token
		}
		return fmt.Sprintf("%s:%d", m[1], unix)
	})
}

// HasDateOperator reports whether q already contains an explicit date-range
// operator.
func HasDateOperator(q string) bool {
	for _, op := range rangeOperators {
		if strings.Contains(q, op) {
			return true
		}
	}
	return false
}
