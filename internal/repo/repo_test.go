package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_demo/internal/models"
	"github.com/Skotchmaster/shop_demo/internal/transport"
	"github.com/Skotchmaster/shop_demo/pkg/db"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, "file::memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, gdb, models.All()...))
	t.Cleanup(func() { _ = db.Close(gdb) })

	return &GormRepo{DB: gdb}
}

func seed(t *testing.T, r *GormRepo) (*models.User, *models.Product) {
	t.Helper()
	ctx := context.Background()

	u := &models.User{Username: "alice", Password: "pw"}
	require.NoError(t, r.CreateUser(ctx, u))
	p := &models.Product{Name: "Book", Price: 9.99, Description: "paper"}
	require.NoError(t, r.CreateProduct(ctx, p))
	return u, p
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestProducts_CRUD(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	p := &models.Product{Name: "Lamp", Price: 20}
	require.NoError(t, r.CreateProduct(ctx, p))
	require.NotZero(t, p.ID)

	got, err := r.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", got.Name)
	assert.Equal(t, "", got.Description)

	upd, err := r.PatchProduct(ctx, p.ID, transport.UpdateProductRequest{Price: f64Ptr(25.5)})
	require.NoError(t, err)
	assert.Equal(t, "Lamp", upd.Name)
	assert.Equal(t, 25.5, upd.Price)

	list, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, r.DeleteProduct(ctx, p.ID))
	_, err = r.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, r.DeleteProduct(ctx, 999), gorm.ErrRecordNotFound)
	_, err = r.PatchProduct(ctx, 999, transport.UpdateProductRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListProducts_EmptyIsNotNil(t *testing.T) {
	r := newTestRepo(t)

	list, err := r.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCreateUser_Duplicate(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateUser(ctx, &models.User{Username: "bob", Password: "a"}))
	err := r.CreateUser(ctx, &models.User{Username: "bob", Password: "b"})
	assert.ErrorIs(t, err, ErrUserAlreadyExist)

	u, err := r.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "a", u.Password)

	_, err = r.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCart_QuantityLifecycle(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u, p := seed(t, r)

	item, err := r.AddToCart(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, item.Quantity)

	item, err = r.AddToCart(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, item.Quantity)

	view, err := r.CartView(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, view, 1)
	assert.Equal(t, p.ID, view[0].ProductID)
	assert.Equal(t, "Book", view[0].ProductName)
	assert.Equal(t, 9.99, view[0].ProductPrice)
	assert.Equal(t, "paper", view[0].ProductDescription)
	assert.EqualValues(t, 2, view[0].Quantity)

	item, deleted, err := r.RemoveOneFromCart(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.EqualValues(t, 1, item.Quantity)

	_, deleted, err = r.RemoveOneFromCart(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, _, err = r.RemoveOneFromCart(ctx, u.ID, p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	view, err = r.CartView(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, view)
}

func TestAddToCart_ConcurrentAddsShareOneRow(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u, p := seed(t, r)

	const adds = 20
	var wg sync.WaitGroup
	errs := make(chan error, adds)
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.AddToCart(ctx, u.ID, p.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	view, err := r.CartView(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, view, 1)
	assert.EqualValues(t, adds, view[0].Quantity)
}

func TestClearCart(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u, p := seed(t, r)
	p2 := &models.Product{Name: "Pen", Price: 1}
	require.NoError(t, r.CreateProduct(ctx, p2))

	_, err := r.AddToCart(ctx, u.ID, p.ID)
	require.NoError(t, err)
	_, err = r.AddToCart(ctx, u.ID, p2.ID)
	require.NoError(t, err)

	n, err := r.ClearCart(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = r.ClearCart(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteProduct_RemovesCartRows(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u, p := seed(t, r)

	_, err := r.AddToCart(ctx, u.ID, p.ID)
	require.NoError(t, err)
	require.NoError(t, r.DeleteProduct(ctx, p.ID))

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Where("product_id = ?", p.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSessions(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	u, _ := seed(t, r)

	now := time.Now()
	live := &models.Session{ID: "live", UserID: u.ID, ExpiresAt: now.Add(time.Hour).Unix()}
	old := &models.Session{ID: "old", UserID: u.ID, ExpiresAt: now.Add(-time.Hour).Unix()}
	require.NoError(t, r.CreateSession(ctx, live))
	require.NoError(t, r.CreateSession(ctx, old))

	require.NoError(t, r.RevokeSession(ctx, "live"))
	got, err := r.GetSession(ctx, "live")
	require.NoError(t, err)
	assert.True(t, got.Revoked)

	n, err := r.DeleteExpiredSessions(ctx, now.Unix())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = r.GetSession(ctx, "old")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
