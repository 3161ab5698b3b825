package service

import (
	"context"

	"github.com/Skotchmaster/shop_demo/internal/models"
	"github.com/Skotchmaster/shop_demo/internal/transport"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, prod *models.Product) error
	PatchProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}

type CartRepository interface {
	AddToCart(ctx context.Context, userID, productID uint) (*models.CartItem, error)
	RemoveOneFromCart(ctx context.Context, userID, productID uint) (*models.CartItem, bool, error)
	CartView(ctx context.Context, userID uint) ([]models.CartItemView, error)
	ClearCart(ctx context.Context, userID uint) (int64, error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	RevokeSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now int64) (int64, error)
}
