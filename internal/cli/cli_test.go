package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_demo/internal/config"
	"github.com/Skotchmaster/shop_demo/internal/output"
	"github.com/Skotchmaster/shop_demo/internal/repo"
	"github.com/Skotchmaster/shop_demo/internal/service"
	"github.com/Skotchmaster/shop_demo/pkg/db"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	prev := output.Out
	output.Out = &buf
	t.Cleanup(func() { output.Out = prev })

	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&buf)
	root.SetErr(&buf)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestMigrateAndCreateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shop.db")

	out, err := run(t, "migrate", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "schema is up to date")
	for _, table := range []string{"users", "products", "cart_items", "sessions"} {
		assert.Contains(t, out, table)
	}

	out, err = run(t, "user", "create", "--db", dbPath, "--username", "alice", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, `created user "alice"`)

	_, err = run(t, "user", "create", "--db", dbPath, "--username", "alice", "--password", "other")
	assert.ErrorIs(t, err, service.ErrConflict)

	ctx := context.Background()
	gdb, err := db.Open(ctx, dbPath)
	require.NoError(t, err)
	defer db.Close(gdb)

	u, err := (&repo.GormRepo{DB: gdb}).GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "secret", u.Password)
}

func TestUserCreate_RequiresFlags(t *testing.T) {
	_, err := run(t, "user", "create", "--db", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
}

func TestServe_RequiresSecret(t *testing.T) {
	err := runServe(context.Background(), config.Config{DatabaseURL: "file::memory:"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestNewPublisher(t *testing.T) {
	p, closeFn, err := newPublisher(nil)
	require.NoError(t, err)
	assert.IsType(t, service.NopPublisher{}, p)
	require.NoError(t, closeFn())

	p, closeFn, err = newPublisher([]string{"localhost:9092"})
	require.NoError(t, err)
	assert.NotNil(t, p)
	require.NoError(t, closeFn())
}
