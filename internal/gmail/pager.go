package gmail

import (
	"context"

	"github.com/mailfold/mailfold/internal/query"
)

// AutoFetchCap bounds the number of unique messages an auto-fetching
// aggregation will accumulate across pages.
const AutoFetchCap = 100

// MessageRef is a lightweight handle to one message as returned by a list
// call. The full content is fetched separately.
type MessageRef struct {
	ID       string
	ThreadID string
}

// ListRequest describes one list call against the mailbox provider. Query
// is the canonical textual query; Category travels separately as a
// structured label filter and is never folded into Query.
type ListRequest struct {
	Query     string
	Category  query.Category
	PageToken string
	PageSize  int64
}

// Page is one provider page of message references.
type Page struct {
	Messages      []MessageRef
	NextPageToken string

	// Estimate is the provider's guess at the total number of matches for
	// the whole query, not this page.
	Estimate int64
}

// Lister lists message references one provider page at a time.
type Lister interface {
	ListMessages(ctx context.Context, req ListRequest) (*Page, error)
}

// AggregatedResult is the outcome of FetchAll: the deduplicated messages
// collected so far, the provider's total estimate as reported by the last
// page fetched, and whether the aggregation stopped at AutoFetchCap with
// more matches still unfetched.
type AggregatedResult struct {
	Messages      []MessageRef
	Estimate      int64
	Truncated     bool
	NextPageToken string
}

// FetchAll collects message references for req. With autoFetchAll false it
// returns the single page the request addresses. With autoFetchAll true it
// walks pages from req.PageToken onward, deduplicating by message ID with
// the first occurrence winning, until the provider is exhausted or
// min(requestedCap, AutoFetchCap) unique messages have been collected
// (requestedCap <= 0 means AutoFetchCap alone applies). Hitting the cap
// while matches remain marks the result truncated and records the token of
// the next unfetched page. Any page error aborts the whole aggregation;
// partial results are never returned alongside an error.
func FetchAll(ctx context.Context, l Lister, req ListRequest, autoFetchAll bool, requestedCap int) (*AggregatedResult, error) {
	if !autoFetchAll {
		page, err := l.ListMessages(ctx, req)
		if err != nil {
			return nil, err
		}
		return &AggregatedResult{
			Messages:      page.Messages,
			Estimate:      page.Estimate,
			NextPageToken: page.NextPageToken,
		}, nil
	}

	budget := AutoFetchCap
	if requestedCap > 0 && requestedCap < AutoFetchCap {
		budget = requestedCap
	}

	seen := make(map[string]struct{})
	var collected []MessageRef
	var estimate int64

	for {
		page, err := l.ListMessages(ctx, req)
		if err != nil {
			return nil, err
		}
		estimate = page.Estimate

		overflow := false
		for _, m := range page.Messages {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			if len(collected) >= budget {
				overflow = true
				break
			}
			seen[m.ID] = struct{}{}
			collected = append(collected, m)
		}

		if overflow || (len(collected) == budget && page.NextPageToken != "") {
			return &AggregatedResult{
				Messages:      collected,
				Estimate:      estimate,
				Truncated:     true,
				NextPageToken: page.NextPageToken,
			}, nil
		}

		if page.NextPageToken == "" {
			break
		}
		req.PageToken = page.NextPageToken
	}

	return &AggregatedResult{Messages: collected, Estimate: estimate}, nil
}
