package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"tasterealm/order-svc/internal/domain"
)

const (
	CartKey   = "cart"
	OrdersKey = "orders"
)

// Store is a keyed string store, the server-side stand-in for browser local storage.
// Get reports false when the key has never been written.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type scopedStore struct {
	inner  Store
	prefix string
}

// Scoped confines every key to one profile: "profile:<id>:<key>".
func Scoped(inner Store, profileID string) Store {
	return &scopedStore{inner: inner, prefix: "profile:" + profileID + ":"}
}

func (s *scopedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scopedStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

// PersistentList keeps an ordered sequence of T as one JSON array under a single key.
// Writers do an unconditional read-modify-write, so two processes mutating the same
// key concurrently lose updates (last write wins).
type PersistentList[T any] struct {
	store Store
	key   string
}

func NewPersistentList[T any](store Store, key string) *PersistentList[T] {
	return &PersistentList[T]{store: store, key: key}
}

func (l *PersistentList[T]) Key() string {
	return l.key
}

// Load returns the stored items. A missing or malformed value yields an empty list.
func (l *PersistentList[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := l.store.Get(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", l.key, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("[storage] WARNING: discarding malformed %q value: %v", l.key, err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (l *PersistentList[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", l.key, err)
	}
	if err := l.store.Set(ctx, l.key, string(payload)); err != nil {
		return fmt.Errorf("save %s: %w", l.key, err)
	}
	return nil
}

func (l *PersistentList[T]) Append(ctx context.Context, item T) error {
	items, err := l.Load(ctx)
	if err != nil {
		return err
	}
	return l.Save(ctx, append(items, item))
}

// ProfileStorage hands out the cart list and order log of a profile.
type ProfileStorage struct {
	Store Store
}

func NewProfileStorage(store Store) *ProfileStorage {
	return &ProfileStorage{Store: store}
}

func (p *ProfileStorage) Cart(profileID string) *PersistentList[domain.CartItem] {
	return NewPersistentList[domain.CartItem](Scoped(p.Store, profileID), CartKey)
}

func (p *ProfileStorage) Orders(profileID string) *PersistentList[domain.OrderRecord] {
	return NewPersistentList[domain.OrderRecord](Scoped(p.Store, profileID), OrdersKey)
}
