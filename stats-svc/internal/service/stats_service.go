package service

import (
	"context"
	"errors"
	"time"

	"tasterealm/stats-svc/internal/domain"
	"tasterealm/stats-svc/internal/storage"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
	dailyTop     = 5
)

var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

type StatsService struct {
	store StoreInterface
	now   func() time.Time
}

func NewStatsService(store StoreInterface) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

// Popular ranks dishes by quantity sold. Limits outside 1..MaxLimit fall back to the default.
func (s *StatsService) Popular(ctx context.Context, limit int) ([]domain.DishPopularity, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return s.store.Popular(ctx, limit)
}

// Daily returns the counters of one UTC day; an empty date means today.
func (s *StatsService) Daily(ctx context.Context, date string) (domain.DailyStats, error) {
	if date == "" {
		date = s.now().UTC().Format(storage.DateLayout)
	} else if _, err := time.Parse(storage.DateLayout, date); err != nil {
		return domain.DailyStats{}, ErrInvalidDate
	}
	return s.store.Daily(ctx, date, dailyTop)
}

var _ StatsServiceInterface = (*StatsService)(nil)
