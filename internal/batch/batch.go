// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package batch resolves lists of raw items into place results with bounded concurrency.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/place"
)

// MaxInFlight is the maximum number of items resolved at the same time.
const MaxInFlight = 4

// ResolveFunc resolves a single item with the given provider. A nil result without error drops
// the item.
type ResolveFunc[T any] func(ctx context.Context, provider place.Provider, item T) (*place.Result, error)

// Option configures a batch run.
type Option func(*options)

type options struct {
	onItemDone func()
}

// OnItemDone registers fn to be called after every item, regardless of its outcome. fn may be
// called concurrently.
func OnItemDone(fn func()) Option {
	return func(o *options) {
		o.onItemDone = fn
	}
}

// Resolve applies fn to every item with at most MaxInFlight calls running at once and returns the
// successful results in input order. Items whose resolution fails, yields nil or panics are
// logged and dropped; they never affect other items.
func Resolve[T any](ctx context.Context, log *logger.Logger, provider place.Provider, items []T, fn ResolveFunc[T],
	opts ...Option,
) []place.Result {
	if len(items) == 0 {
		return []place.Result{}
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	resolved := make([]*place.Result, len(items))
	group := new(errgroup.Group)
	group.SetLimit(MaxInFlight)
	for i, item := range items {
		group.Go(func() error {
			if o.onItemDone != nil {
				defer o.onItemDone()
			}
			result, err := resolveItem(ctx, provider, item, fn)
			if err != nil {
				log.Debug("failed to resolve batch item", "index", i, logger.Err(err))
				return nil
			}
			if result == nil {
				log.Debug("batch item yielded no result", "index", i)
				return nil
			}
			resolved[i] = result
			return nil
		})
	}
	// Item failures are never returned to the group
	_ = group.Wait()

	results := make([]place.Result, 0, len(items))
	for _, result := range resolved {
		if result != nil {
			results = append(results, *result)
		}
	}
	return results
}

func resolveItem[T any](ctx context.Context, provider place.Provider, item T, fn ResolveFunc[T]) (result *place.Result,
	err error,
) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("panic while resolving item: %v", r)
		}
	}()
	return fn(ctx, provider, item)
}
