package service

import (
	"context"

	"tasterealm/stats-svc/internal/domain"
	"tasterealm/stats-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordOrder(ctx context.Context, event domain.OrderEvent) (bool, error)
	Popular(ctx context.Context, limit int) ([]domain.DishPopularity, error)
	Daily(ctx context.Context, date string, limit int) (domain.DailyStats, error)
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context)
	ProcessOrder(ctx context.Context, event domain.OrderEvent)
}

type StatsServiceInterface interface {
	Popular(ctx context.Context, limit int) ([]domain.DishPopularity, error)
	Daily(ctx context.Context, date string) (domain.DailyStats, error)
}

var _ StoreInterface = (*storage.Store)(nil)
