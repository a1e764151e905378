package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mailfold/mailfold/internal/gmail"
	"github.com/mailfold/mailfold/internal/logging"
	"github.com/mailfold/mailfold/internal/query"
	"github.com/mailfold/mailfold/internal/timezone"
)

const (
	// DefaultMaxResults applies when the caller gives no page size.
	DefaultMaxResults = 25

	// MaxPageSize is the largest page size forwarded to the provider.
	MaxPageSize = 500
)

// Mailbox is the provider surface the orchestrator needs: paged listing
// plus per-message envelope fetch.
type Mailbox interface {
	gmail.Lister
	GetMessageSummary(ctx context.Context, messageID string) (*gmail.EmailSummary, error)
}

// Request carries the user-facing parameters of one search or get-recent
// invocation.
type Request struct {
	Query        string
	TimeFilter   query.TimeFilter
	Hours        float64
	Category     query.Category
	MaxResults   int64
	PageToken    string
	AutoFetchAll bool
}

// Result is the structured outcome of one invocation. A zero-match
// invocation carries only Message; the other fields stay empty so the
// serialized payload has no emails key at all.
type Result struct {
	Message            string                `json:"message,omitempty"`
	Emails             []*gmail.EmailSummary `json:"emails,omitempty"`
	NextPageToken      string                `json:"nextPageToken,omitempty"`
	ResultSizeEstimate int64                 `json:"resultSizeEstimate,omitempty"`
	Query              string                `json:"query,omitempty"`
	TimeFilter         string                `json:"timeFilter,omitempty"`
	Category           string                `json:"category,omitempty"`
	Truncated          bool                  `json:"truncated,omitempty"`
}

// ContinuationHint renders the follow-up instruction when more pages
// remain. The remaining count is the provider's estimate minus what was
// returned, floored at zero since the estimate may lag reality.
func (r *Result) ContinuationHint() string {
	if r.NextPageToken == "" {
		return ""
	}
	remaining := r.ResultSizeEstimate - int64(len(r.Emails))
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("More results are available (approximately %d). Pass pageToken %q to fetch the next page.", remaining, r.NextPageToken)
}

// Orchestrator composes query normalization and page aggregation into the
// two user-facing search operations. It holds no per-request state.
type Orchestrator struct {
	norm   *query.Normalizer
	clock  *timezone.Clock
	logger *slog.Logger
}

// New builds an Orchestrator on the given clock.
func New(clock *timezone.Clock, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		norm:   query.NewNormalizer(clock),
		clock:  clock,
		logger: logger,
	}
}

// GetRecent lists recent emails. With no time signal at all it restricts
// to today's calendar day; a recent listing is never unbounded.
func (o *Orchestrator) GetRecent(ctx context.Context, mbox Mailbox, req Request) (*Result, error) {
	return o.run(ctx, mbox, req, true)
}

// Search runs a free-form query. Absence of any time signal means no time
// restriction, unlike GetRecent.
func (o *Orchestrator) Search(ctx context.Context, mbox Mailbox, req Request) (*Result, error) {
	return o.run(ctx, mbox, req, false)
}

func (o *Orchestrator) run(ctx context.Context, mbox Mailbox, req Request, defaultToToday bool) (*Result, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxPageSize {
		maxResults = MaxPageSize
	}

	canonical := o.norm.Normalize(query.Request{
		Text:           req.Query,
		TimeFilter:     req.TimeFilter,
		Hours:          req.Hours,
		Category:       req.Category,
		DefaultToToday: defaultToToday,
	})
	q := canonical.Query()

	o.logger.DebugContext(ctx, "running mailbox search",
		logging.Operation("search"),
		slog.String("query_hash", logging.QueryHash(q)),
		slog.String("category", string(canonical.Category)),
		slog.Bool("auto_fetch_all", req.AutoFetchAll),
	)

	agg, err := gmail.FetchAll(ctx, mbox, gmail.ListRequest{
		Query:     q,
		Category:  canonical.Category,
		PageToken: req.PageToken,
		PageSize:  maxResults,
	}, req.AutoFetchAll, int(maxResults))
	if err != nil {
		return nil, err
	}

	if len(agg.Messages) == 0 {
		return &Result{Message: o.noResultsMessage(req, q, defaultToToday)}, nil
	}

	emails := make([]*gmail.EmailSummary, 0, len(agg.Messages))
	for _, ref := range agg.Messages {
		summary, err := mbox.GetMessageSummary(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		emails = append(emails, summary)
	}

	return &Result{
		Emails:             emails,
		NextPageToken:      agg.NextPageToken,
		ResultSizeEstimate: agg.Estimate,
		Query:              q,
		TimeFilter:         string(req.TimeFilter),
		Category:           string(canonical.Category),
		Truncated:          agg.Truncated,
	}, nil
}

// noResultsMessage names the constraint that produced the empty set so the
// caller can loosen the right one.
func (o *Orchestrator) noResultsMessage(req Request, canonicalQuery string, defaultToToday bool) string {
	var b strings.Builder
	b.WriteString("No emails found")

	today := o.clock.FormatDate(o.clock.NowShifted())
	switch {
	case req.TimeFilter == query.TimeFilterToday:
		fmt.Fprintf(&b, " from today (%s)", today)
	case req.TimeFilter == query.TimeFilterYesterday:
		fmt.Fprintf(&b, " from yesterday (%s)", o.clock.FormatDate(o.clock.NowShifted().AddDate(0, 0, -1)))
	case req.TimeFilter == query.TimeFilterLast24h:
		b.WriteString(" from the last 24 hours")
	case req.Hours > 0:
		fmt.Fprintf(&b, " from the last %g hours", req.Hours)
	case query.HasDateOperator(canonicalQuery):
		// explicit range already appears in the quoted query
	case defaultToToday:
		fmt.Fprintf(&b, " from today (%s)", today)
	}

	if req.Category != query.CategoryNone {
		fmt.Fprintf(&b, " in category %s", req.Category)
	}
	if req.Query != "" {
		fmt.Fprintf(&b, " matching %q", strings.TrimSpace(req.Query))
	}
	return b.String()
}
