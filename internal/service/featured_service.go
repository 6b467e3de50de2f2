package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"movie-database-service/internal/models"
	"movie-database-service/internal/search"
)

const secondsPerDay = 24 * 60 * 60

// FeaturedSelector picks one eligible title per UTC day. The pick for a
// given day only changes when the eligible set changes.
type FeaturedSelector struct {
	titles EligibleTitles
	now    func() time.Time
}

// NewFeaturedSelector creates a FeaturedSelector. A nil clock means time.Now.
func NewFeaturedSelector(titles EligibleTitles, now func() time.Time) *FeaturedSelector {
	if now == nil {
		now = time.Now
	}
	return &FeaturedSelector{titles: titles, now: now}
}

// DayIndex is the number of whole days since the Unix epoch, in UTC.
func DayIndex(t time.Time) int64 {
	return floorDiv(t.UTC().Unix(), secondsPerDay)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Pick returns today's featured title, or ErrNoFeaturedTitle when nothing
// is eligible.
func (s *FeaturedSelector) Pick(ctx context.Context) (*models.Title, error) {
	n, err := s.titles.Count(ctx, search.FeaturedFilters())
	if err != nil {
		return nil, fmt.Errorf("failed to count eligible titles: %w", err)
	}
	if n <= 0 {
		return nil, ErrNoFeaturedTitle
	}

	day := DayIndex(s.now())
	idx := int(((day % int64(n)) + int64(n)) % int64(n))

	rows, err := s.titles.Search(ctx, search.FeaturedPlan(idx))
	if err != nil {
		return nil, fmt.Errorf("failed to load featured title: %w", err)
	}
	// the eligible set can shrink between the count and the fetch
	if len(rows) == 0 {
		slog.Warn("featured title vanished between count and fetch", "eligible", n, "index", idx)
		return nil, ErrNoFeaturedTitle
	}
	return &rows[0], nil
}
