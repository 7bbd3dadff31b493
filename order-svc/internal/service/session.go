package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"tasterealm/order-svc/internal/domain"
)

// Session is the state of one profile: its cart, checkout and cart view.
// Lifecycle: NewSession, Load, use, Close.
type Session struct {
	ProfileID string
	Cart      *Cart
	Checkout  *Checkout
	View      *CartView

	orders      OrderLog
	unsubscribe func()
}

func NewSession(profileID string, cartStore CartStore, orders OrderLog, opts CheckoutOptions) *Session {
	cart := NewCart(cartStore)
	return &Session{
		ProfileID: profileID,
		Cart:      cart,
		Checkout:  NewCheckout(profileID, cart, orders, opts),
		View:      NewCartView(),
		orders:    orders,
	}
}

func (s *Session) Load(ctx context.Context) error {
	if err := s.Cart.Load(ctx); err != nil {
		return err
	}
	s.View.Render(s.Cart.Snapshot())
	s.unsubscribe = s.Cart.Subscribe(s.View.Render)
	return nil
}

func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Session) Orders(ctx context.Context) ([]domain.OrderRecord, error) {
	return s.orders.Load(ctx)
}

func (s *Session) Order(ctx context.Context, orderNumber string) (*domain.OrderRecord, error) {
	orders, err := s.orders.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].OrderNumber == orderNumber {
			return &orders[i], nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

const DefaultSessionIdleTTL = 30 * time.Minute

type sessionEntry struct {
	session  *Session
	lastUsed time.Time
}

// SessionManager owns the sessions of the profiles seen by this process. Sessions idle
// for longer than idleTTL are closed and reloaded from storage on next use; a zero
// idleTTL keeps them for the life of the manager.
type SessionManager struct {
	mu        sync.Mutex
	sessions  map[string]*sessionEntry
	storage   StorageFactory
	opts      CheckoutOptions
	idleTTL   time.Duration
	nextSweep time.Time
}

func NewSessionManager(storage StorageFactory, opts CheckoutOptions, idleTTL time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*sessionEntry),
		storage:  storage,
		opts:     opts.withDefaults(),
		idleTTL:  idleTTL,
	}
}

// Session returns the loaded session of a profile, creating it on first use.
func (m *SessionManager) Session(ctx context.Context, profileID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.Now()
	m.sweepLocked(now)

	if entry, ok := m.sessions[profileID]; ok {
		entry.lastUsed = now
		return entry.session, nil
	}

	cartStore, orders := m.storage(profileID)
	session := NewSession(profileID, cartStore, orders, m.opts)
	if err := session.Load(ctx); err != nil {
		return nil, fmt.Errorf("open session %s: %w", profileID, err)
	}
	m.sessions[profileID] = &sessionEntry{session: session, lastUsed: now}
	log.Printf("[order-svc] session opened for profile %s (%d items in cart)", profileID, session.Cart.TotalItems())
	return session, nil
}

// Len returns the number of open sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// sweepLocked closes idle sessions. A session still processing an order or holding
// a cart the store has not accepted is kept.
func (m *SessionManager) sweepLocked(now time.Time) {
	if m.idleTTL <= 0 || now.Before(m.nextSweep) {
		return
	}
	m.nextSweep = now.Add(m.idleTTL / 2)

	for id, entry := range m.sessions {
		if now.Sub(entry.lastUsed) < m.idleTTL {
			continue
		}
		if entry.session.Checkout.State() == StateProcessing || entry.session.Cart.Unsaved() {
			continue
		}
		entry.session.Close()
		delete(m.sessions, id)
		log.Printf("[order-svc] session closed for idle profile %s", id)
	}
}

func (m *SessionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, entry := range m.sessions {
		entry.session.Close()
		delete(m.sessions, id)
	}
}

var _ SessionProvider = (*SessionManager)(nil)
