package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slicePager serves fixed pages, optionally failing after a given
// number of successful fetches.
type slicePager struct {
	pages     [][]string
	next      int
	failAfter int // -1 means never fail
	fetches   int
}

func (p *slicePager) NextPage(ctx context.Context) ([]string, bool, error) {
	if p.failAfter >= 0 && p.fetches >= p.failAfter {
		return nil, false, errors.New("upstream unavailable")
	}
	p.fetches++
	page := p.pages[p.next]
	p.next++
	return page, p.next == len(p.pages), nil
}

func TestDrain_PreservesOrder(t *testing.T) {
	pager := &slicePager{
		pages:     [][]string{{"a", "b"}, {"c"}, {"d", "e", "f"}},
		failAfter: -1,
	}

	items, err := Drain(context.Background(), pager)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, items)
}

func TestDrain_SinglePage(t *testing.T) {
	pager := &slicePager{pages: [][]string{{"only"}}, failAfter: -1}

	items, err := Drain(context.Background(), pager)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, items)
}

func TestDrain_MidwayFailureReturnsNothing(t *testing.T) {
	pager := &slicePager{
		pages:     [][]string{{"a", "b"}, {"c"}},
		failAfter: 1,
	}

	items, err := Drain(context.Background(), pager)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page fetch failed")
	// No partial result disguised as complete.
	assert.Nil(t, items)
}

func TestDrain_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pager := &slicePager{pages: [][]string{{"a"}}, failAfter: -1}
	_, err := Drain(ctx, pager)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPageFunc(t *testing.T) {
	calls := 0
	src := PageFunc[int](func(ctx context.Context) ([]int, bool, error) {
		calls++
		return []int{calls}, calls == 3, nil
	})

	items, err := Drain(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, items)
}
