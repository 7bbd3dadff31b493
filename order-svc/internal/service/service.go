package service

import (
	"context"
	"strings"

	"tasterealm/order-svc/internal/domain"
)

type CartStore interface {
	Load(ctx context.Context) ([]domain.CartItem, error)
	Save(ctx context.Context, items []domain.CartItem) error
}

type OrderLog interface {
	Load(ctx context.Context) ([]domain.OrderRecord, error)
	Append(ctx context.Context, record domain.OrderRecord) error
}

// StorageFactory returns the cart list and order log owned by one profile.
type StorageFactory func(profileID string) (CartStore, OrderLog)

type MenuRepository interface {
	ListMenu(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type MenuServiceInterface interface {
	List(ctx context.Context, category string) ([]domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
}

type SessionProvider interface {
	Session(ctx context.Context, profileID string) (*Session, error)
}

type AuthServiceInterface interface {
	Login(ctx context.Context, req LoginRequest) (AuthResult, error)
	Signup(ctx context.Context, req SignupRequest) (AuthResult, error)
}

const (
	FilterAll        = "all"
	PlaceholderImage = "../assests/placeholder.jpg"
)

type MenuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// List returns the dishes of one category, or every dish for "all" and "".
func (s *MenuService) List(ctx context.Context, category string) ([]domain.MenuItem, error) {
	items, err := s.repo.ListMenu(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if category == "" || category == FilterAll || string(item.Category) == category {
			item.Image = FixImagePath(item.Image)
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	preview := *item
	preview.Image = FixImagePath(preview.Image)
	return &preview, nil
}

// FixImagePath rewrites page-relative asset paths so they resolve from nested pages.
func FixImagePath(path string) string {
	switch {
	case path == "":
		return PlaceholderImage
	case strings.HasPrefix(path, "assests/"):
		return "../" + path
	default:
		return path
	}
}

func CartItemFromMenu(item domain.MenuItem) domain.CartItem {
	return domain.CartItem{
		ID:       item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Image:    item.Image,
		Category: item.Category,
	}
}

var _ MenuServiceInterface = (*MenuService)(nil)
