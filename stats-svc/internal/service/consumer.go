package service

import (
	"context"
	"encoding/json"
	"log"

	"tasterealm/stats-svc/internal/domain"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
}

func NewConsumer(reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

// Start reads the orders topic until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting Stats Service consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("[stats-svc] consumer stopped")
				return
			}
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.ProcessOrder(ctx, event)
	}
}

func (c *Consumer) ProcessOrder(ctx context.Context, event domain.OrderEvent) {
	if event.Type != domain.OrderPlacedEvent {
		return
	}
	log.Printf("Processing order: OrderNumber=%s, Items=%d, Total=%.2f",
		event.OrderNumber, len(event.Items), event.Total)

	recorded, err := c.Store.RecordOrder(ctx, event)
	if err != nil {
		log.Printf("Error recording order %s: %v", event.OrderNumber, err)
		return
	}
	if !recorded {
		log.Printf("[stats-svc] order %s already recorded, skipping", event.OrderNumber)
		return
	}

	log.Printf("Successfully processed order %s", event.OrderNumber)
}

var _ ConsumerInterface = (*Consumer)(nil)
