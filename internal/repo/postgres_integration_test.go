package repo

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Skotchmaster/shop_demo/internal/models"
	"github.com/Skotchmaster/shop_demo/pkg/db"
)

func TestGormRepo_Postgres(t *testing.T) {
	if os.Getenv("SHOP_PG_INTEGRATION") != "1" {
		t.Skip("set SHOP_PG_INTEGRATION=1 to run against a postgres container")
	}
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("shop"),
		postgres.WithUsername("shop"),
		postgres.WithPassword("shop"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	gdb, err := db.Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, db.Migrate(ctx, gdb, models.All()...))

	r := &GormRepo{DB: gdb}

	u := &models.User{Username: "pg-user", Password: "pw"}
	require.NoError(t, r.CreateUser(ctx, u))
	assert.ErrorIs(t, r.CreateUser(ctx, &models.User{Username: "pg-user", Password: "x"}), ErrUserAlreadyExist)

	p := &models.Product{Name: "Book", Price: 9.99}
	require.NoError(t, r.CreateProduct(ctx, p))

	_, err = r.AddToCart(ctx, u.ID, p.ID)
	require.NoError(t, err)
	item, err := r.AddToCart(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, item.Quantity)

	view, err := r.CartView(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, view, 1)
	assert.Equal(t, "Book", view[0].ProductName)

	other := &models.Product{Name: "Pen", Price: 1.5}
	require.NoError(t, r.CreateProduct(ctx, other))
	const adds = 16
	var wg sync.WaitGroup
	errs := make(chan error, adds)
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.AddToCart(ctx, u.ID, other.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	var pen models.CartItem
	require.NoError(t, gdb.Where("user_id = ? AND product_id = ?", u.ID, other.ID).First(&pen).Error)
	assert.EqualValues(t, adds, pen.Quantity)
	require.NoError(t, r.DeleteProduct(ctx, other.ID))

	require.NoError(t, r.DeleteProduct(ctx, p.ID))
	view, err = r.CartView(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, view)
}
