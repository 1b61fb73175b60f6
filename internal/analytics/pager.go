// Package analytics wraps the Google Analytics Admin and Data APIs
// behind an identity-scoped client factory and a small upstream
// capability interface.
package analytics

import (
	"context"
	"fmt"
)

// PageSource yields pages of items one at a time. NextPage blocks while
// the next page is fetched; done is true once the final page has been
// returned.
type PageSource[T any] interface {
	NextPage(ctx context.Context) (items []T, done bool, err error)
}

// PageFunc adapts a function to the PageSource interface.
type PageFunc[T any] func(ctx context.Context) ([]T, bool, error)

// NextPage calls f.
func (f PageFunc[T]) NextPage(ctx context.Context) ([]T, bool, error) {
	return f(ctx)
}

// Drain consumes every page from src and returns all items in page
// order, then item order within each page. If any page fetch fails the
// whole drain fails; a partial result is never returned.
func Drain[T any](ctx context.Context, src PageSource[T]) ([]T, error) {
	var out []T
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, done, err := src.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("page fetch failed: %w", err)
		}
		out = append(out, items...)
		if done {
			return out, nil
		}
	}
}
