package gerrit

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"

	"go.uber.org/zap"

	"github.com/bjulian5/goaltools/internal/cache"
)

// PageSize is the number of changes requested per bulk query
const PageSize = 200

// API defines the review service operations needed by Factory
type API interface {
	BaseURL() string
	ChangeDetail(ctx context.Context, id string) (json.RawMessage, error)
	QueryChanges(ctx context.Context, query string, start, limit int) ([]json.RawMessage, error)
}

// Factory builds reviews from the cache or the review service.
//
// Only merged reviews are cached: anything else may still receive votes
// or new patch sets.
type Factory struct {
	api    API
	cache  cache.Store
	logger *zap.Logger
}

// NewFactory creates a Factory
func NewFactory(api API, store cache.Store, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{api: api, cache: store, logger: logger}
}

func reviewKey(id string) cache.Key {
	return cache.Key{"review", id}
}

// Fetch returns the review with the given id, from the cache if possible
func (f *Factory) Fetch(ctx context.Context, id string) (*Review, error) {
	key := reviewKey(id)

	found, err := f.cache.Contains(key)
	if err != nil {
		return nil, err
	}
	if found {
		f.logger.Debug("found review in cache", zap.String("review", id))
		var raw json.RawMessage
		if err := f.cache.Get(key, &raw); err != nil {
			return nil, err
		}
		return f.newReview(id, raw)
	}

	raw, err := f.api.ChangeDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	review, err := f.newReview(id, raw)
	if err != nil {
		return nil, err
	}
	if err := f.cacheReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Query returns the reviews matching query, fetching pages lazily as the
// sequence is consumed. Iterating again re-issues every request. The
// sequence stops after yielding the first error.
func (f *Factory) Query(ctx context.Context, query string) iter.Seq2[*Review, error] {
	return func(yield func(*Review, error) bool) {
		start := 0
		for {
			changes, err := f.api.QueryChanges(ctx, query, start, PageSize)
			if err != nil {
				yield(nil, err)
				return
			}
			f.logger.Debug("fetched changes",
				zap.String("query", query),
				zap.Int("start", start),
				zap.Int("count", len(changes)))

			var last *Review
			for _, raw := range changes {
				review, err := f.queryResult(raw)
				if err != nil {
					yield(nil, err)
					return
				}
				last = review
				if !yield(review, nil) {
					return
				}
			}

			if last == nil || !last.change.MoreChanges {
				return
			}
			start += PageSize
		}
	}
}

func (f *Factory) queryResult(raw json.RawMessage) (*Review, error) {
	var header struct {
		Number int `json:"_number"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("failed to parse change: %w", err)
	}

	review, err := f.newReview(strconv.Itoa(header.Number), raw)
	if err != nil {
		return nil, err
	}
	if err := f.cacheReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (f *Factory) newReview(id string, raw json.RawMessage) (*Review, error) {
	review, err := NewReview(id, raw)
	if err != nil {
		return nil, err
	}
	review.baseURL = f.api.BaseURL()
	return review, nil
}

// cacheReview stores the raw document of merged reviews
func (f *Factory) cacheReview(review *Review) error {
	if !review.IsMerged() {
		return nil
	}
	if err := f.cache.Set(reviewKey(review.ID()), review.Raw()); err != nil {
		return fmt.Errorf("failed to cache review %s: %w", review.ID(), err)
	}
	return nil
}
