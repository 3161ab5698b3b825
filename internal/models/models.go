package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"unique;not null"          json:"username"`
	Password string `gorm:"not null"                 json:"-"`
}

// ProductNameMaxLen matches the size of the products.name column.
const ProductNameMaxLen = 120

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:120;not null"        json:"name"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Description string  `gorm:"type:text"                json:"description"`
}

// CartItem holds the quantity of one product in one user's cart.
// (user_id, product_id) is unique, repeated adds bump Quantity.
type CartItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"                json:"id"`
	UserID    uint     `gorm:"uniqueIndex:idx_user_product;not null"   json:"user_id"`
	ProductID uint     `gorm:"uniqueIndex:idx_user_product;not null"   json:"product_id"`
	Quantity  uint     `gorm:"not null;default:1;check:quantity > 0"   json:"quantity"`
	User      *User    `gorm:"constraint:OnDelete:CASCADE"             json:"-"`
	Product   *Product `gorm:"constraint:OnDelete:CASCADE"             json:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartItemView is a cart row joined with the current product fields.
type CartItemView struct {
	ID                 uint    `json:"id"`
	UserID             uint    `json:"user_id"`
	ProductID          uint    `json:"product_id"`
	Quantity           uint    `json:"quantity"`
	ProductName        string  `json:"product_name"`
	ProductPrice       float64 `json:"product_price"`
	ProductDescription string  `json:"product_description"`
}

type Session struct {
	ID        string    `gorm:"primaryKey;size:36"   json:"id"`
	UserID    uint      `gorm:"index;not null"       json:"user_id"`
	ExpiresAt int64     `gorm:"not null"             json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false" json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// All lists every table in migration order.
func All() []any {
	return []any{&User{}, &Product{}, &CartItem{}, &Session{}}
}
