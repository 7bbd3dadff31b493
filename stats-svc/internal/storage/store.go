package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"tasterealm/stats-svc/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	DateLayout = "2006-01-02"

	popularKey = "stats:popular"
	dishesKey  = "stats:dishes"

	DailyTTL = 7 * 24 * time.Hour
)

func dailyKey(date string) string        { return "stats:daily:" + date }
func dailyPopularKey(date string) string { return "stats:daily:" + date + ":popular" }
func seenKey(orderNumber string) string  { return "stats:seen:" + orderNumber }

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// RecordOrder folds one order into the all-time and daily counters. An order number
// already recorded is skipped and reported as false, so redelivered messages do not
// count twice. The marker is released when the counters fail so the order can be retried.
func (s *Store) RecordOrder(ctx context.Context, event domain.OrderEvent) (bool, error) {
	marker := seenKey(event.OrderNumber)
	fresh, err := s.rdb.SetNX(ctx, marker, 1, DailyTTL).Result()
	if err != nil {
		return false, err
	}
	if !fresh {
		return false, nil
	}

	date := event.Timestamp.UTC().Format(DateLayout)
	day := dailyKey(date)
	dayPopular := dailyPopularKey(date)

	items := 0
	pipe := s.rdb.TxPipeline()
	for _, item := range event.Items {
		items += item.Quantity
		pipe.ZIncrBy(ctx, popularKey, float64(item.Quantity), item.ID)
		pipe.ZIncrBy(ctx, dayPopular, float64(item.Quantity), item.ID)
		pipe.HSet(ctx, dishesKey, item.ID, item.Name)
	}
	pipe.HIncrBy(ctx, day, "orders", 1)
	pipe.HIncrBy(ctx, day, "items", int64(items))
	pipe.HIncrByFloat(ctx, day, "revenue", event.Total)
	pipe.Expire(ctx, day, DailyTTL)
	pipe.Expire(ctx, dayPopular, DailyTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		if delErr := s.rdb.Del(context.WithoutCancel(ctx), marker).Err(); delErr != nil {
			log.Printf("[stats-svc] WARNING: failed to release marker for order %s: %v", event.OrderNumber, delErr)
		}
		return false, fmt.Errorf("record order %s: %w", event.OrderNumber, err)
	}
	return true, nil
}

func (s *Store) Popular(ctx context.Context, limit int) ([]domain.DishPopularity, error) {
	return s.ranking(ctx, popularKey, limit)
}

func (s *Store) Daily(ctx context.Context, date string, limit int) (domain.DailyStats, error) {
	stats := domain.DailyStats{Date: date, TopDishes: []domain.DishPopularity{}}

	fields, err := s.rdb.HGetAll(ctx, dailyKey(date)).Result()
	if err != nil {
		return stats, err
	}
	stats.Orders, _ = strconv.Atoi(fields["orders"])
	stats.ItemsSold, _ = strconv.Atoi(fields["items"])
	if raw, ok := fields["revenue"]; ok {
		revenue, err := decimal.NewFromString(raw)
		if err == nil {
			stats.Revenue = revenue.Round(2).InexactFloat64()
		}
	}

	stats.TopDishes, err = s.ranking(ctx, dailyPopularKey(date), limit)
	return stats, err
}

func (s *Store) ranking(ctx context.Context, key string, limit int) ([]domain.DishPopularity, error) {
	result, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	dishes := make([]domain.DishPopularity, 0, len(result))
	if len(result) == 0 {
		return dishes, nil
	}

	ids := make([]string, len(result))
	for i, member := range result {
		ids[i] = member.Member.(string)
	}
	names, err := s.rdb.HMGet(ctx, dishesKey, ids...).Result()
	if err != nil {
		return nil, err
	}

	for i, member := range result {
		name, _ := names[i].(string)
		dishes = append(dishes, domain.DishPopularity{
			DishID:   ids[i],
			DishName: name,
			Quantity: int(member.Score),
		})
	}
	return dishes, nil
}
