package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"tasterealm/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type CheckoutState string

const (
	StateEditing    CheckoutState = "editing"
	StateValidating CheckoutState = "validating"
	StateRejected   CheckoutState = "rejected"
	StateAccepted   CheckoutState = "accepted"
	StateProcessing CheckoutState = "processing"
	StateCompleted  CheckoutState = "completed"
)

const (
	DefaultProcessingDelay = 2 * time.Second
	completionTimeout      = 10 * time.Second
	isoMillis              = "2006-01-02T15:04:05.000Z"
)

var (
	ErrEmptyCart          = errors.New("your cart is empty, please add items before placing an order")
	ErrSubmissionInFlight = errors.New("order is already being processed")
	ErrPromoLocked        = errors.New("a promo code has already been applied")
	ErrInvalidOrderType   = errors.New("order type must be delivery or takeaway")
)

type Confirmation struct {
	OrderNumber    string               `json:"orderNumber"`
	OrderType      domain.OrderType     `json:"orderType"`
	OrderTypeLabel string               `json:"orderTypeLabel"`
	Payment        domain.PaymentMethod `json:"payment"`
	PaymentLabel   string               `json:"paymentLabel"`
	Total          float64              `json:"total"`
	TotalDisplay   string               `json:"totalDisplay"`
}

type CheckoutOptions struct {
	ProcessingDelay time.Duration
	Publisher       OrderPublisher
	Now             func() time.Time
	Sleep           func(time.Duration)
	RandN           func(n int) int
}

func (o CheckoutOptions) withDefaults() CheckoutOptions {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	if o.RandN == nil {
		o.RandN = rand.IntN
	}
	return o
}

// Checkout drives one order submission:
// editing -> validating -> rejected | accepted -> processing -> completed.
type Checkout struct {
	mu        sync.Mutex
	profileID string
	cart      *Cart
	orders    OrderLog
	opts      CheckoutOptions

	state     CheckoutState
	orderType domain.OrderType
	promo     *Discount
	errors    FieldErrors
}

func NewCheckout(profileID string, cart *Cart, orders OrderLog, opts CheckoutOptions) *Checkout {
	return &Checkout{
		profileID: profileID,
		cart:      cart,
		orders:    orders,
		opts:      opts.withDefaults(),
		state:     StateEditing,
		orderType: domain.OrderTypeDelivery,
	}
}

func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Checkout) OrderType() domain.OrderType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orderType
}

// Errors returns the field errors of the last rejected submission.
func (c *Checkout) Errors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(FieldErrors, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

func (c *Checkout) Promo() *Discount {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.promo == nil {
		return nil
	}
	promo := *c.promo
	return &promo
}

// PromoLocked reports whether the promo input is closed for this checkout.
func (c *Checkout) PromoLocked() bool {
	return c.Promo() != nil
}

func (c *Checkout) Quote() Quote {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Price(c.cart.Total(), c.orderType, c.promoAmountLocked())
}

func (c *Checkout) SetOrderType(orderType domain.OrderType) (Quote, error) {
	if !orderType.Valid() {
		return Quote{}, ErrInvalidOrderType
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.orderType = orderType
	c.leaveRejectedLocked()
	return Price(c.cart.Total(), c.orderType, c.promoAmountLocked()), nil
}

// ApplyPromo replaces any active promo with code. A rejected code keeps the previous one.
func (c *Checkout) ApplyPromo(code string) (Discount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	discount, err := ApplyPromo(code, c.cart.Total())
	if err != nil {
		return Discount{}, err
	}
	c.promo = &discount
	c.leaveRejectedLocked()
	return discount, nil
}

// ApplyPromoOnce applies code only while no promo is active.
func (c *Checkout) ApplyPromoOnce(code string) (Discount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.promo != nil {
		return Discount{}, ErrPromoLocked
	}
	discount, err := ApplyPromo(code, c.cart.Total())
	if err != nil {
		return Discount{}, err
	}
	c.promo = &discount
	c.leaveRejectedLocked()
	return discount, nil
}

// Submit validates the form, waits out the processing delay and records the order.
// Once processing starts the order completes even if ctx is cancelled.
func (c *Checkout) Submit(ctx context.Context, form CheckoutForm) (Confirmation, error) {
	c.mu.Lock()
	if c.state == StateProcessing {
		c.mu.Unlock()
		return Confirmation{}, ErrSubmissionInFlight
	}

	c.state = StateValidating
	if errs := ValidateCheckoutForm(form); errs != nil {
		c.state = StateRejected
		c.errors = errs
		c.mu.Unlock()
		return Confirmation{}, &ValidationError{Fields: errs}
	}
	c.errors = nil

	if c.cart.TotalItems() == 0 {
		c.state = StateRejected
		c.mu.Unlock()
		return Confirmation{}, ErrEmptyCart
	}

	c.state = StateAccepted
	c.orderType = form.OrderType
	c.state = StateProcessing
	c.mu.Unlock()

	c.opts.Sleep(c.opts.ProcessingDelay)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), completionTimeout)
	defer cancel()

	c.mu.Lock()
	confirmation, event, err := c.completeLocked(ctx, form)
	if err != nil {
		c.state = StateEditing
		c.mu.Unlock()
		return Confirmation{}, err
	}
	c.mu.Unlock()

	c.publish(ctx, event)
	return confirmation, nil
}

func (c *Checkout) completeLocked(ctx context.Context, form CheckoutForm) (Confirmation, domain.OrderEvent, error) {
	items := c.cart.Items()
	if len(items) == 0 {
		return Confirmation{}, domain.OrderEvent{}, ErrEmptyCart
	}

	quote := Price(Subtotal(items), form.OrderType, c.promoAmountLocked())
	now := c.opts.Now()

	record := domain.OrderRecord{
		OrderNumber: fmt.Sprintf("TR-%d-%d", now.UnixMilli(), c.opts.RandN(1000)),
		Customer: domain.Customer{
			Name:    strings.TrimSpace(form.Name),
			Phone:   strings.TrimSpace(form.Phone),
			Email:   strings.TrimSpace(form.Email),
			Address: strings.TrimSpace(form.Address),
		},
		OrderType:    form.OrderType,
		Instructions: strings.TrimSpace(form.Instructions),
		Payment:      form.Payment,
		Items:        items,
		Discount:     quote.Discount.InexactFloat64(),
		Subtotal:     quote.Subtotal.InexactFloat64(),
		Tax:          quote.Tax.InexactFloat64(),
		Delivery:     quote.Delivery.InexactFloat64(),
		Total:        quote.Total.InexactFloat64(),
		Timestamp:    now.UTC().Format(isoMillis),
	}
	if c.promo != nil {
		record.PromoCode = c.promo.Code
	}

	if err := c.orders.Append(ctx, record); err != nil {
		return Confirmation{}, domain.OrderEvent{}, fmt.Errorf("save order: %w", err)
	}

	if err := c.cart.Reset(ctx); err != nil {
		log.Printf("[order-svc] WARNING: order %s saved but cart not persisted as empty: %v", record.OrderNumber, err)
	}

	c.state = StateCompleted
	c.promo = nil

	log.Printf("[order-svc] order %s completed for profile %s, total %s",
		record.OrderNumber, c.profileID, FormatMoney(quote.Total))

	return Confirmation{
		OrderNumber:    record.OrderNumber,
		OrderType:      record.OrderType,
		OrderTypeLabel: record.OrderType.Label(),
		Payment:        record.Payment,
		PaymentLabel:   record.Payment.Label(),
		Total:          record.Total,
		TotalDisplay:   FormatMoney(quote.Total),
	}, c.orderEvent(record, now), nil
}

func (c *Checkout) orderEvent(record domain.OrderRecord, at time.Time) domain.OrderEvent {
	event := domain.OrderEvent{
		Type:        domain.OrderPlacedEvent,
		OrderNumber: record.OrderNumber,
		ProfileID:   c.profileID,
		OrderType:   record.OrderType,
		Payment:     record.Payment,
		Total:       record.Total,
		Timestamp:   at,
	}
	for _, item := range record.Items {
		event.Items = append(event.Items, domain.OrderEventItem{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return event
}

// publish is called without the checkout lock held.
func (c *Checkout) publish(ctx context.Context, event domain.OrderEvent) {
	if c.opts.Publisher == nil {
		return
	}
	if err := c.opts.Publisher.PublishOrder(ctx, event); err != nil {
		log.Printf("[order-svc] WARNING: failed to publish order %s: %v", event.OrderNumber, err)
	}
}

func (c *Checkout) promoAmountLocked() decimal.Decimal {
	if c.promo == nil {
		return decimal.Zero
	}
	return c.promo.Amount
}

func (c *Checkout) leaveRejectedLocked() {
	if c.state == StateRejected || c.state == StateCompleted {
		c.state = StateEditing
	}
}
