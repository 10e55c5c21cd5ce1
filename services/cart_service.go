package services

import (
	"context"
	"fmt"

	"catering-shop/models"
)

// CartStore is the durable per-session cart record. Implemented by
// repositories.CartRepository.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (models.Cart, error)
	Save(ctx context.Context, sessionID string, cart models.Cart) error
	Clear(ctx context.Context, sessionID string) error
}

type CartService struct {
	store CartStore
	fees  FeeSchedule
}

func NewCartService(store CartStore, fees FeeSchedule) *CartService {
	return &CartService{store: store, fees: fees}
}

// Add merges by item ID: an existing line gains quantity 1, a new item is
// appended with quantity 1. Every mutation is saved immediately.
func (s *CartService) Add(ctx context.Context, sessionID string, item models.CartItem) (models.Cart, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	merged := false
	for i := range cart {
		if cart[i].ID == item.ID {
			cart[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = 1
		cart = append(cart, item)
	}

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// SetQuantity updates a line's quantity; zero or negative removes the line so
// the cart never holds a non-positive quantity.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (models.Cart, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if quantity <= 0 {
		cart = removeItem(cart, itemID)
	} else {
		for i := range cart {
			if cart[i].ID == itemID {
				cart[i].Quantity = quantity
				break
			}
		}
	}

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) Remove(ctx context.Context, sessionID, itemID string) (models.Cart, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart = removeItem(cart, itemID)

	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) Get(ctx context.Context, sessionID string) (models.Cart, error) {
	return s.store.Load(ctx, sessionID)
}

// Clear drops the persisted record entirely. Only the post-submission path
// calls this.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// View projects the cart into its rendered state: id-tagged rows, totals from
// the shared calculator, the badge, and the empty flag.
func (s *CartService) View(cart models.Cart, deliverySelected bool) models.CartView {
	items := []models.CartItemView{}
	for _, item := range cart {
		items = append(items, models.CartItemView{
			ID:        item.ID,
			Name:      item.Name,
			TraySize:  item.TraySize,
			Image:     item.Image,
			Quantity:  item.Quantity,
			UnitPrice: item.Price.StringFixed(2),
			LineTotal: item.LineTotal().StringFixed(2),
		})
	}

	count := cart.Count()
	return models.CartView{
		Items:  items,
		Empty:  len(cart) == 0,
		Badge:  models.CartBadge{Count: count, Active: count > 0},
		Totals: CalculateTotals(cart.Subtotal(), deliverySelected, s.fees).View(),
	}
}

func removeItem(cart models.Cart, itemID string) models.Cart {
	filtered := models.Cart{}
	for _, item := range cart {
		if item.ID != itemID {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
