// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batch runs an operation over a list of items and keeps one
// result per item, so that a failing item never stops the others.
package batch

import "context"

// Result is the outcome of one item.
type Result[T, R any] struct {
	Item  T
	Value R
	Err   error
}

// OK reports whether the item succeeded.
func (r Result[T, R]) OK() bool { return r.Err == nil }

// Map calls fn for each item in order. Every item gets a result. Once ctx
// is done the remaining items are not attempted and carry ctx.Err().
func Map[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error)) []Result[T, R] {
	out := make([]Result[T, R], len(items))
	for i, item := range items {
		out[i].Item = item
		if err := ctx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		out[i].Value, out[i].Err = fn(ctx, item)
	}
	return out
}

// Count returns the number of succeeded and failed results.
func Count[T, R any](results []Result[T, R]) (ok, failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	return ok, failed
}
