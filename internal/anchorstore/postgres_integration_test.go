//go:build integration

package anchorstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/spardeck/marine-measure/internal/anchorstore"
	"github.com/spardeck/marine-measure/internal/water"
)

// startPostgres launches a throwaway postgres container and returns a
// connected store with the schema applied.
func startPostgres(ctx context.Context, t *testing.T) *anchorstore.Postgres {
	t.Helper()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("marine"),
		tcpostgres.WithUsername("marine"),
		tcpostgres.WithPassword("marine"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "postgres connection string")

	store, err := anchorstore.NewPostgres(ctx, connStr)
	require.NoError(t, err, "connect store")
	t.Cleanup(store.Close)

	require.NoError(t, store.EnsureSchema(ctx), "ensure schema")
	return store
}

func TestPostgresSeedAndFetch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := startPostgres(ctx, t)

	inserted, err := store.Seed(ctx, water.DefaultAnchorPoints())
	require.NoError(t, err)
	assert.Equal(t, 14, inserted)

	// Seeding again must be a no-op thanks to the unique constraint.
	inserted, err = store.Seed(ctx, water.DefaultAnchorPoints())
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	fresh, err := store.FetchAnchorPoints(ctx, water.Fresh)
	require.NoError(t, err)
	require.Len(t, fresh, 7)

	// Rows come back ordered by temperature with decimals intact: no
	// float drift through the NUMERIC columns.
	assert.True(t, fresh[0].TemperatureC.Equal(decimal.NewFromInt(0)))
	assert.True(t, fresh[0].Density.Equal(decimal.RequireFromString("999.8")), "density %s", fresh[0].Density)
	assert.True(t, fresh[0].KinematicViscosity.Equal(decimal.RequireFromString("1.787e-6")), "viscosity %s", fresh[0].KinematicViscosity)
	for i := 1; i < len(fresh); i++ {
		assert.True(t, fresh[i-1].TemperatureC.LessThan(fresh[i].TemperatureC), "rows %d and %d out of order", i-1, i)
	}

	sea, err := store.FetchAnchorPoints(ctx, water.Sea)
	require.NoError(t, err)
	require.Len(t, sea, 7)
	assert.Equal(t, water.Sea, sea[0].Medium)
}

func TestPostgresServesInterpolator(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := startPostgres(ctx, t)
	_, err := store.Seed(ctx, water.DefaultAnchorPoints())
	require.NoError(t, err)

	ip := water.NewInterpolator(store)

	got, err := ip.Properties(ctx, decimal.NewFromInt(15), water.DefaultSalinityPSU)
	require.NoError(t, err)
	assert.False(t, got.Interpolated)
	assert.True(t, got.Density.Equal(decimal.RequireFromString("1025.9")), "density %s", got.Density)

	got, err = ip.Properties(ctx, decimal.RequireFromString("12.5"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.Interpolated)
	assert.InDelta(t, 999.4, got.Density.InexactFloat64(), 1e-9)

	require.NoError(t, ip.CheckReadiness(ctx))
}

func TestPostgresEmptyTable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := startPostgres(ctx, t)

	points, err := store.FetchAnchorPoints(ctx, water.Fresh)
	require.NoError(t, err)
	assert.Empty(t, points)

	ip := water.NewInterpolator(store)
	_, err = ip.Properties(ctx, decimal.NewFromInt(10), decimal.Zero)
	assert.True(t, water.IsLookupError(err), "got %v", err)
}
