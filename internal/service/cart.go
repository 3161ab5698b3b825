package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_demo/internal/models"
	"github.com/Skotchmaster/shop_demo/internal/mykafka"
)

type CartService struct {
	Repo     CartRepository
	Users    UserRepository
	Products ProductRepository
	Events   Publisher
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	if err := s.checkRefs(ctx, userID, productID); err != nil {
		return nil, err
	}

	item, err := s.Repo.AddToCart(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, userKey(userID), map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": productID,
		"quantity":  item.Quantity,
	})
	return item, nil
}

func (s *CartService) checkRefs(ctx context.Context, userID, productID uint) error {
	if _, err := s.Users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d does not exist: %w", userID, ErrValidation)
		}
		return err
	}
	if _, err := s.Products.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d does not exist: %w", productID, ErrValidation)
		}
		return err
	}
	return nil
}

// RemoveFromCart takes one unit of the product out of the user's cart.
// removed is true when that was the last unit and the row is gone.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uint) (*models.CartItem, bool, error) {
	item, removed, err := s.Repo.RemoveOneFromCart(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("product %d is not in the cart: %w", productID, ErrValidation)
		}
		return nil, false, err
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, userKey(userID), map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
		"quantity":  item.Quantity,
		"removed":   removed,
	})
	return item, removed, nil
}

func (s *CartService) ViewCart(ctx context.Context, userID uint) ([]models.CartItemView, error) {
	return s.Repo.CartView(ctx, userID)
}

// Checkout empties the cart. No order is recorded.
func (s *CartService) Checkout(ctx context.Context, userID uint) (int64, error) {
	n, err := s.Repo.ClearCart(ctx, userID)
	if err != nil {
		return 0, err
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, userKey(userID), map[string]any{
		"type":    "cart_checked_out",
		"userID":  userID,
		"removed": n,
	})
	return n, nil
}

func userKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
