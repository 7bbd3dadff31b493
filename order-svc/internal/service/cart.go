package service

import (
	"context"
	"fmt"
	"sync"

	"tasterealm/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// CartSnapshot is the state handed to cart listeners after every mutation.
type CartSnapshot struct {
	Items      []domain.CartItem
	Total      decimal.Decimal
	TotalItems int
}

type CartListener func(CartSnapshot)

type subscription struct {
	id int
	fn CartListener
}

// Cart is write-through: a mutation is kept in memory only once the store accepted it.
type Cart struct {
	mu        sync.Mutex
	store     CartStore
	items     []domain.CartItem
	listeners []subscription
	nextSubID int
	unsaved   bool
}

func NewCart(store CartStore) *Cart {
	return &Cart{store: store, items: []domain.CartItem{}}
}

func (c *Cart) Load(ctx context.Context) error {
	items, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	c.mu.Lock()
	c.items = items
	c.unsaved = false
	c.mu.Unlock()
	return nil
}

func (c *Cart) AddItem(ctx context.Context, item domain.CartItem) error {
	return c.mutate(ctx, func(items []domain.CartItem) ([]domain.CartItem, bool) {
		if i := indexOf(items, item.ID); i >= 0 {
			items[i].Quantity++
			return items, true
		}
		item.Quantity = 1
		return append(items, item), true
	})
}

func (c *Cart) RemoveItem(ctx context.Context, id string) error {
	return c.mutate(ctx, func(items []domain.CartItem) ([]domain.CartItem, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		return append(items[:i], items[i+1:]...), true
	})
}

// UpdateQuantity sets the quantity of an existing line; n <= 0 removes it.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, n int) error {
	if n <= 0 {
		return c.RemoveItem(ctx, id)
	}
	return c.mutate(ctx, func(items []domain.CartItem) ([]domain.CartItem, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		items[i].Quantity = n
		return items, true
	})
}

func (c *Cart) Clear(ctx context.Context) error {
	return c.mutate(ctx, func(items []domain.CartItem) ([]domain.CartItem, bool) {
		return []domain.CartItem{}, true
	})
}

// Reset empties the cart even when the store rejects the write. Until a later write
// succeeds the cart reports Unsaved.
func (c *Cart) Reset(ctx context.Context) error {
	c.mu.Lock()
	err := c.store.Save(ctx, []domain.CartItem{})
	c.items = []domain.CartItem{}
	c.unsaved = err != nil
	c.notifyAndUnlock()

	if err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// Unsaved reports whether memory holds changes the store has not accepted.
func (c *Cart) Unsaved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsaved
}

func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.items)
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Subtotal(c.items)
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return countItems(c.items)
}

func (c *Cart) Snapshot() CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers a listener called after each successful mutation.
func (c *Cart) Subscribe(fn CartListener) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSubID++
	id := c.nextSubID
	c.listeners = append(c.listeners, subscription{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, sub := range c.listeners {
			if sub.id == id {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

func (c *Cart) mutate(ctx context.Context, fn func([]domain.CartItem) ([]domain.CartItem, bool)) error {
	c.mu.Lock()
	next, changed := fn(cloneItems(c.items))
	if !changed {
		c.mu.Unlock()
		return nil
	}
	if err := c.store.Save(ctx, next); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("persist cart: %w", err)
	}
	c.items = next
	c.unsaved = false
	c.notifyAndUnlock()
	return nil
}

func (c *Cart) notifyAndUnlock() {
	snapshot := c.snapshotLocked()
	listeners := make([]subscription, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, sub := range listeners {
		sub.fn(snapshot)
	}
}

func (c *Cart) snapshotLocked() CartSnapshot {
	return CartSnapshot{
		Items:      cloneItems(c.items),
		Total:      Subtotal(c.items),
		TotalItems: countItems(c.items),
	}
}

// Subtotal is the sum of price x quantity over the given lines.
func Subtotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func countItems(items []domain.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

func indexOf(items []domain.CartItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}
