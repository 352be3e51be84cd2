// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/wneessen/placeresolver/internal/logger"
	"github.com/wneessen/placeresolver/internal/place"
)

func TestResolve(t *testing.T) {
	t.Run("empty input yields an empty result", func(t *testing.T) {
		var calls atomic.Int32
		results := Resolve(t.Context(), testLogger(), nil, []string{}, func(context.Context, place.Provider,
			string,
		) (*place.Result, error) {
			calls.Add(1)
			return &place.Result{}, nil
		})
		if results == nil {
			t.Fatal("expected a non-nil result slice")
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
		if calls.Load() != 0 {
			t.Errorf("expected resolver not to be called, got %d calls", calls.Load())
		}
	})
	t.Run("never more than four items are in flight", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			var inFlight, maxInFlight atomic.Int32
			items := make([]int, 20)
			fn := func(ctx context.Context, _ place.Provider, _ int) (*place.Result, error) {
				current := inFlight.Add(1)
				for {
					peak := maxInFlight.Load()
					if current <= peak || maxInFlight.CompareAndSwap(peak, current) {
						break
					}
				}
				time.Sleep(time.Second)
				inFlight.Add(-1)
				return &place.Result{}, nil
			}

			results := Resolve(t.Context(), testLogger(), nil, items, fn)
			if len(results) != len(items) {
				t.Errorf("expected %d results, got %d", len(items), len(results))
			}
			if maxInFlight.Load() != MaxInFlight {
				t.Errorf("expected at most %d items in flight, got %d", MaxInFlight, maxInFlight.Load())
			}
		})
	})
	t.Run("input order is preserved and failures are dropped", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
			fn := func(ctx context.Context, _ place.Provider, item int) (*place.Result, error) {
				// later items finish first
				time.Sleep(time.Duration(len(items)-item) * time.Millisecond)
				if item%2 == 1 {
					return nil, errors.New("intentionally failing")
				}
				return &place.Result{Name: strconv.Itoa(item)}, nil
			}

			results := Resolve(t.Context(), testLogger(), nil, items, fn)
			var names []string
			for _, result := range results {
				names = append(names, result.Name)
			}
			if got := strings.Join(names, ","); got != "0,2,4,6,8" {
				t.Errorf("expected results 0,2,4,6,8, got %s", got)
			}
		})
	})
	t.Run("panics and nil results only drop the item", func(t *testing.T) {
		items := []string{"ok", "panic", "nil", "ok"}
		fn := func(ctx context.Context, _ place.Provider, item string) (*place.Result, error) {
			switch item {
			case "panic":
				panic("intentionally panicking")
			case "nil":
				return nil, nil
			}
			return &place.Result{Name: item}, nil
		}

		buf := &strings.Builder{}
		log := logger.NewLogger(slog.LevelDebug, buf)
		results := Resolve(t.Context(), log, nil, items, fn)
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if !strings.Contains(buf.String(), "intentionally panicking") {
			t.Errorf("expected panic to be logged, got %q", buf.String())
		}
	})
	t.Run("item done callback is called for every item", func(t *testing.T) {
		var done atomic.Int32
		items := []int{1, 2, 3, 4, 5, 6}
		fn := func(ctx context.Context, _ place.Provider, item int) (*place.Result, error) {
			if item > 3 {
				return nil, errors.New("intentionally failing")
			}
			return &place.Result{}, nil
		}

		results := Resolve(t.Context(), testLogger(), nil, items, fn, OnItemDone(func() { done.Add(1) }))
		if len(results) != 3 {
			t.Errorf("expected 3 results, got %d", len(results))
		}
		if done.Load() != int32(len(items)) {
			t.Errorf("expected %d done callbacks, got %d", len(items), done.Load())
		}
	})
	t.Run("the provider is handed to the resolver", func(t *testing.T) {
		provider := stubProvider{}
		fn := func(ctx context.Context, p place.Provider, item string) (*place.Result, error) {
			return &place.Result{Name: p.Name()}, nil
		}
		results := Resolve[string](t.Context(), testLogger(), provider, []string{"a"}, fn)
		if len(results) != 1 || results[0].Name != "stub" {
			t.Errorf("expected the provider name in the result, got %+v", results)
		}
	})
}

func testLogger() *logger.Logger {
	return logger.NewLogger(slog.LevelDebug, io.Discard)
}

type stubProvider struct {
	place.Provider
}

func (stubProvider) Name() string { return "stub" }
