package service

import (
	"sync"

	"tasterealm/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type CartLineView struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Image            string          `json:"image"`
	Category         domain.Category `json:"category"`
	CategoryLabel    string          `json:"categoryLabel"`
	Price            float64         `json:"price"`
	PriceDisplay     string          `json:"priceDisplay"`
	Quantity         int             `json:"quantity"`
	LineTotal        float64         `json:"lineTotal"`
	LineTotalDisplay string          `json:"lineTotalDisplay"`
}

type QuoteDisplay struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Delivery string `json:"delivery"`
	Discount string `json:"discount,omitempty"`
	Total    string `json:"total"`
}

type QuoteView struct {
	Subtotal float64      `json:"subtotal"`
	Tax      float64      `json:"tax"`
	Delivery float64      `json:"delivery"`
	Discount float64      `json:"discount"`
	Total    float64      `json:"total"`
	Display  QuoteDisplay `json:"display"`
}

func NewQuoteView(q Quote) QuoteView {
	view := QuoteView{
		Subtotal: q.Subtotal.InexactFloat64(),
		Tax:      q.Tax.InexactFloat64(),
		Delivery: q.Delivery.InexactFloat64(),
		Discount: q.Discount.InexactFloat64(),
		Total:    q.Total.InexactFloat64(),
		Display: QuoteDisplay{
			Subtotal: FormatMoney(q.Subtotal),
			Tax:      FormatMoney(q.Tax),
			Delivery: FormatDelivery(q.Delivery),
			Total:    FormatMoney(q.Total),
		},
	}
	if q.Discount.IsPositive() {
		view.Display.Discount = "-" + FormatMoney(q.Discount)
	}
	return view
}

// CartPageView is what the cart page, the order summary and the nav badge read.
type CartPageView struct {
	Items  []CartLineView `json:"items"`
	Badge  int            `json:"badge"`
	Empty  bool           `json:"empty"`
	Totals QuoteView      `json:"totals"`
}

// CartView keeps the latest rendering of a cart; it is fed by cart notifications.
type CartView struct {
	mu      sync.RWMutex
	current CartPageView
}

func NewCartView() *CartView {
	return &CartView{current: RenderCart(CartSnapshot{Total: decimal.Zero})}
}

func (v *CartView) Render(snapshot CartSnapshot) {
	page := RenderCart(snapshot)
	v.mu.Lock()
	v.current = page
	v.mu.Unlock()
}

func (v *CartView) Current() CartPageView {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// RenderCart prices the cart page as a delivery order without promo.
func RenderCart(snapshot CartSnapshot) CartPageView {
	lines := make([]CartLineView, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		price := decimal.NewFromFloat(item.Price)
		lineTotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, CartLineView{
			ID:               item.ID,
			Name:             item.Name,
			Image:            FixImagePath(item.Image),
			Category:         item.Category,
			CategoryLabel:    item.Category.Label(),
			Price:            item.Price,
			PriceDisplay:     FormatMoney(price),
			Quantity:         item.Quantity,
			LineTotal:        lineTotal.InexactFloat64(),
			LineTotalDisplay: FormatMoney(lineTotal),
		})
	}

	return CartPageView{
		Items:  lines,
		Badge:  snapshot.TotalItems,
		Empty:  len(lines) == 0,
		Totals: NewQuoteView(Price(snapshot.Total, domain.OrderTypeDelivery, decimal.Zero)),
	}
}
