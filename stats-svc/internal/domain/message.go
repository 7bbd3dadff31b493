package domain

import "time"

const OrderPlacedEvent = "order_placed"

// OrderEvent is the message order-svc writes to the orders topic.
type OrderEvent struct {
	Type        string      `json:"type"`
	OrderNumber string      `json:"order_number"`
	ProfileID   string      `json:"profile_id"`
	OrderType   string      `json:"order_type"`
	Payment     string      `json:"payment"`
	Total       float64     `json:"total"`
	Items       []OrderItem `json:"items"`
	Timestamp   time.Time   `json:"timestamp"`
}

type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
