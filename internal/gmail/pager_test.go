package gmail

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister serves a scripted sequence of pages keyed by page token. The
// empty token addresses the first page.
type fakeLister struct {
	pages map[string]*Page
	errAt string
	calls []ListRequest
}

func (f *fakeLister) ListMessages(_ context.Context, req ListRequest) (*Page, error) {
	f.calls = append(f.calls, req)
	if f.errAt != "" && req.PageToken == f.errAt {
		return nil, fmt.Errorf("backend unavailable")
	}
	page, ok := f.pages[req.PageToken]
	if !ok {
		return nil, fmt.Errorf("unknown page token %q", req.PageToken)
	}
	return page, nil
}

func refs(prefix string, from, to int) []MessageRef {
	var out []MessageRef
	for i := from; i < to; i++ {
		out = append(out, MessageRef{ID: fmt.Sprintf("%s%d", prefix, i), ThreadID: fmt.Sprintf("t%d", i)})
	}
	return out
}

func TestFetchAllSinglePageMode(t *testing.T) {
	f := &fakeLister{pages: map[string]*Page{
		"": {Messages: refs("m", 0, 25), NextPageToken: "tok2", Estimate: 201},
	}}

	got, err := FetchAll(context.Background(), f, ListRequest{Query: "from:alice", PageSize: 25}, false, 0)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 25)
	assert.Equal(t, int64(201), got.Estimate)
	assert.Equal(t, "tok2", got.NextPageToken)
	assert.False(t, got.Truncated)
	assert.Len(t, f.calls, 1)
}

func TestFetchAllWalksUntilExhausted(t *testing.T) {
	f := &fakeLister{pages: map[string]*Page{
		"":   {Messages: refs("m", 0, 30), NextPageToken: "p2", Estimate: 70},
		"p2": {Messages: refs("m", 30, 60), NextPageToken: "p3", Estimate: 70},
		"p3": {Messages: refs("m", 60, 70), Estimate: 70},
	}}

	got, err := FetchAll(context.Background(), f, ListRequest{Query: "x"}, true, 0)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 70)
	assert.False(t, got.Truncated)
	assert.Empty(t, got.NextPageToken)
	assert.Equal(t, int64(70), got.Estimate)
	assert.Len(t, f.calls, 3)
}

func TestFetchAllStopsAtCap(t *testing.T) {
	f := &fakeLister{pages: map[string]*Page{
		"":   {Messages: refs("m", 0, 60), NextPageToken: "p2", Estimate: 500},
		"p2": {Messages: refs("m", 60, 120), NextPageToken: "p3", Estimate: 500},
	}}

	got, err := FetchAll(context.Background(), f, ListRequest{Query: "x"}, true, 0)
	require.NoError(t, err)
	assert.Len(t, got.Messages, AutoFetchCap)
	assert.True(t, got.Truncated)
	assert.Equal(t, "p3", got.NextPageToken)
	assert.Equal(t, int64(500), got.Estimate)
	// The page after p2 is never fetched.
	assert.Len(t, f.calls, 2)
}

func TestFetchAllCapLandsExactlyOnPageBoundary(t *testing.T) {
	f := &fakeLister{pages: map[string]*Page{
		"":   {Messages: refs("m", 0, 50), NextPageToken: "p2", Estimate: 500},
		"p2": {Messages: refs("m", 50, 100), NextPageToken: "p3", Estimate: 500},
	}}

	got, err := FetchAll(context.Background(), f, ListRequest{}, true, 0)
	require.NoError(t, err)
	assert.Len(t, got.Messages, AutoFetchCap)
	assert.True(t, got.Truncated)
	assert.Equal(t, "p3", got.NextPageToken)
}

func TestFetchAllExactCapNoMorePages(t *testing.T) {
	f := &fakeLister{pages: map[string]*Page{
		"":   {Messages: refs("m", 0, 50), NextPageToken: "p2", Estimate: 100},
		"p2": {Messages: refs("m", 50, 100), Estimate: 100},
	}}

	got, err := FetchAll(context.Background(), f, ListRequest{}, true, 0)
	require.NoError(t, err)
	assert.Len(t, got.Messages, AutoFetchCap)
	assert.False(t, got.Truncated)
	assert.Empty(t, got.NextPageToken)
}

func TestFetchAllHonorsRequestedCap(t *testing.T) {
	f := &fakeLister{pages: map[string]*Page{
		"":   {Messages: refs("m", 0, 20), NextPageToken: "p2", Estimate: 40},
		"p2": {Messages: refs("m", 20, 40), Estimate: 40},
	}}

	got, err := FetchAll(context.Background(), f, ListRequest{}, true, 25)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 25)
	assert.True(t, got.Truncated)

	// A cap above the hard limit does not raise it.
	f2 := &fakeLister{pages: map[string]*Page{
		"": {Messages: refs("m", 0, 150), Estimate: 150},
	}}
	got, err = FetchAll(context.Background(), f2, ListRequest{}, true, 400)
	require.NoError(t, err)
	assert.Len(t, got.Messages, AutoFetchCap)
	assert.True(t, got.Truncated)
}

func TestFetchAllDeduplicatesAcrossPages(t *testing.T) {
	first := refs("m", 0, 10)
	// Second page repeats the tail of the first, as happens when the
	// mailbox shifts under the pagination.
	second := append(refs("m", 5, 10), refs("m", 10, 15)...)
	f := &fakeLister{pages: map[string]*Page{
		"":   {Messages: first, NextPageToken: "p2", Estimate: 15},
		"p2": {Messages: second, Estimate: 15},
	}}

	got, err := FetchAll(context.Background(), f, ListRequest{}, true, 0)
	require.NoError(t, err)
	require.Len(t, got.Messages, 15)
	seen := make(map[string]int)
	for _, m := range got.Messages {
		seen[m.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "message %s repeated", id)
	}
	// First occurrence wins, so the original ordering is preserved.
	assert.Equal(t, "m0", got.Messages[0].ID)
	assert.Equal(t, "m14", got.Messages[14].ID)
}

func TestFetchAllErrorDiscardsPartials(t *testing.T) {
	f := &fakeLister{
		pages: map[string]*Page{
			"": {Messages: refs("m", 0, 30), NextPageToken: "p2", Estimate: 60},
		},
		errAt: "p2",
	}

	got, err := FetchAll(context.Background(), f, ListRequest{}, true, 0)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestFetchAllEstimateComesFromLastPage(t *testing.T) {
	f := &fakeLister{pages: map[string]*Page{
		"":   {Messages: refs("m", 0, 10), NextPageToken: "p2", Estimate: 40},
		"p2": {Messages: refs("m", 10, 20), Estimate: 20},
	}}

	got, err := FetchAll(context.Background(), f, ListRequest{}, true, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got.Estimate)
}

func TestFetchAllEmptyMailbox(t *testing.T) {
	f := &fakeLister{pages: map[string]*Page{
		"": {Estimate: 0},
	}}

	got, err := FetchAll(context.Background(), f, ListRequest{Query: "from:nobody"}, true, 0)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)
	assert.False(t, got.Truncated)
	assert.Zero(t, got.Estimate)
}

func TestFetchAllPassesQueryAndCategoryThrough(t *testing.T) {
	f := &fakeLister{pages: map[string]*Page{
		"":   {Messages: refs("m", 0, 5), NextPageToken: "p2", Estimate: 8},
		"p2": {Messages: refs("m", 5, 8), Estimate: 8},
	}}

	req := ListRequest{Query: "after:100", Category: "social", PageSize: 5}
	_, err := FetchAll(context.Background(), f, req, true, 0)
	require.NoError(t, err)
	require.Len(t, f.calls, 2)
	for _, call := range f.calls {
		assert.Equal(t, "after:100", call.Query)
		assert.Equal(t, req.Category, call.Category)
	}
	assert.Equal(t, "p2", f.calls[1].PageToken)
}
