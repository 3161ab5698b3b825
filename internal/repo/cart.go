package repo

import (
	"context"

	"github.com/Skotchmaster/shop_demo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddToCart inserts a row with quantity 1 or bumps the existing (user, product)
// row. The insert and the bump are one ON CONFLICT statement, so concurrent
// adds for the same pair cannot race into a unique violation.
func (r *GormRepo) AddToCart(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
		bump := clause.Assignments(map[string]any{"quantity": gorm.Expr("cart_items.quantity + 1")})
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: bump,
		}).Create(&row).Error
		if err != nil {
			return err
		}
		return tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveOneFromCart takes one unit of productID out of the cart. The row is
// deleted when its last unit goes; deleted reports that case.
func (r *GormRepo) RemoveOneFromCart(ctx context.Context, userID, productID uint) (*models.CartItem, bool, error) {
	var item models.CartItem
	deleted := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
			return err
		}
		if item.Quantity > 1 {
			err := tx.Model(&models.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", gorm.Expr("quantity - 1")).Error
			if err != nil {
				return err
			}
			item.Quantity--
			return nil
		}
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		item.Quantity = 0
		deleted = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &item, deleted, nil
}

// CartView joins the user's cart rows with their products. Rows whose product
// is gone drop out of the inner join.
func (r *GormRepo) CartView(ctx context.Context, userID uint) ([]models.CartItemView, error) {
	items := make([]models.CartItemView, 0)
	err := r.DB.WithContext(ctx).
		Table("cart_items").
		Select(`cart_items.id, cart_items.user_id, cart_items.product_id, cart_items.quantity,
			products.name AS product_name, products.price AS product_price,
			products.description AS product_description`).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
