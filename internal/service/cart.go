package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/HarisNvr/test-case-shop/internal/logging"
	"github.com/HarisNvr/test-case-shop/internal/models"
	"github.com/HarisNvr/test-case-shop/internal/repo"
)

const (
	EventItemAdded   = "cart_item_added"
	EventItemMerged  = "cart_item_merged"
	EventItemUpdated = "cart_item_updated"
	EventItemRemoved = "cart_item_removed"
	EventCartCleared = "cart_cleared"
)

type Store interface {
	ListEntries(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	GetEntry(ctx context.Context, userID uuid.UUID, productID uint) (*models.CartItem, error)
	UpsertEntry(ctx context.Context, userID uuid.UUID, productID uint, merge repo.MergeFunc) (*models.CartItem, bool, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID uint, qty decimal.Decimal) (*models.CartItem, error)
	DeleteEntry(ctx context.Context, userID uuid.UUID, productID uint) error
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Catalog interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetProducts(ctx context.Context, ids []uint) (map[uint]models.Product, error)
}

// Event is what the service hands to the publisher after a mutation commits.
type Event struct {
	Type      string
	UserID    uuid.UUID
	ProductID uint
	Quantity  decimal.Decimal
	Removed   int64
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, ev Event) error
}

type CartService struct {
	Store   Store
	Catalog Catalog
	Events  EventPublisher
	Max     decimal.Decimal
}

func (s *CartService) List(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	entries, err := s.Store.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart entries: %w", err)
	}

	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	products, err := s.Catalog.GetProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}

	view, missing := BuildView(entries, products)
	if len(missing) > 0 {
		logging.FromContext(ctx).Warn("cart_products_missing", "user_id", userID, "product_ids", missing)
	}
	return &view, nil
}

func (s *CartService) AddOrMerge(ctx context.Context, userID uuid.UUID, productID uint, quantity decimal.NullDecimal) (*Line, error) {
	qty, err := ValidateQuantity(quantity, s.Max)
	if err != nil {
		return nil, err
	}

	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	item, created, err := s.Store.UpsertEntry(ctx, userID, productID, func(current *models.CartItem) (decimal.Decimal, error) {
		if current == nil {
			return qty, nil
		}
		total := current.Quantity.Add(qty)
		if total.GreaterThan(s.Max) {
			return decimal.Zero, &LimitExceededError{Max: s.Max, Remaining: s.Max.Sub(current.Quantity)}
		}
		return total, nil
	})
	if err != nil {
		var limitErr *LimitExceededError
		switch {
		case errors.As(err, &limitErr):
			return nil, limitErr
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("upsert cart entry: %w", err)
	}

	evType := EventItemMerged
	if created {
		evType = EventItemAdded
	}
	s.publish(ctx, Event{Type: evType, UserID: userID, ProductID: productID, Quantity: item.Quantity})

	line := NewLine(*product, item.Quantity)
	return &line, nil
}

func (s *CartService) SetQuantity(ctx context.Context, userID uuid.UUID, productID uint, quantity decimal.NullDecimal) (*Line, error) {
	if _, err := s.Store.GetEntry(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart entry for product %d: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("get cart entry: %w", err)
	}

	qty, err := ValidateQuantity(quantity, s.Max)
	if err != nil {
		return nil, err
	}

	item, err := s.Store.UpdateQuantity(ctx, userID, productID, qty)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart entry for product %d: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("update cart entry: %w", err)
	}

	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventItemUpdated, UserID: userID, ProductID: productID, Quantity: item.Quantity})

	line := NewLine(*product, item.Quantity)
	return &line, nil
}

func (s *CartService) Remove(ctx context.Context, userID uuid.UUID, productID uint) error {
	if err := s.Store.DeleteEntry(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cart entry for product %d: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("delete cart entry: %w", err)
	}

	s.publish(ctx, Event{Type: EventItemRemoved, UserID: userID, ProductID: productID})
	return nil
}

// ClearAll removes every entry of the user. An empty cart is not an error.
func (s *CartService) ClearAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.Store.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}

	s.publish(ctx, Event{Type: EventCartCleared, UserID: userID, Removed: n})
	return n, nil
}

func (s *CartService) product(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// publish is best effort: the mutation has already committed.
func (s *CartService) publish(ctx context.Context, ev Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("cart_event_publish_failed", "type", ev.Type, "user_id", ev.UserID, "error", err)
	}
}
