package rbac_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisgestao/jurisgestao/internal/platform/db"
	"github.com/jurisgestao/jurisgestao/internal/rbac"
	"github.com/jurisgestao/jurisgestao/internal/roles"
)

// Runs against a disposable database when JURISGESTAO_TEST_PG_DSN is set;
// the schema is dropped and recreated, so never point it at real data.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("JURISGESTAO_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("JURISGESTAO_TEST_PG_DSN not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.DropSchema(context.Background(), pool))
	require.NoError(t, db.EnsureSchema(context.Background(), pool))
	return pool
}

// The default bootstrap must run cleanly against the schema the db package
// itself creates: role bootstrap, catalog sync, role listing and the grant
// binding all hit the real tables.
func TestBootstrapAgainstOwnSchema(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	require.NoError(t, roles.NewService(roles.NewRepository(pool)).EnsureDefaults(ctx))

	svc := rbac.NewService(rbac.NewRepository(pool), nil)
	catalog, err := svc.EnsureCatalog(ctx, rbac.DefaultCatalog())
	require.NoError(t, err)
	assert.Len(t, catalog, len(rbac.DefaultCatalog()))

	listed, err := rbac.NewRepository(pool).ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 4)

	require.NoError(t, svc.BindDefaults(ctx, rbac.DefaultRoleGrants()))
	// Re-running converges without error.
	require.NoError(t, svc.BindDefaults(ctx, rbac.DefaultRoleGrants()))
}
