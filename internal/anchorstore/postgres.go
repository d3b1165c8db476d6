package anchorstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spardeck/marine-measure/internal/water"
)

var _ water.AnchorSource = (*Postgres)(nil)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS water_anchor_points (
    id                  UUID        PRIMARY KEY,
    medium              TEXT        NOT NULL,
    temperature_c       NUMERIC     NOT NULL,
    density             NUMERIC     NOT NULL,
    kinematic_viscosity NUMERIC     NOT NULL,
    created_at          TIMESTAMPTZ NOT NULL,
    UNIQUE (medium, temperature_c)
)`

const fetchQuery = `
SELECT medium, temperature_c, density, kinematic_viscosity
FROM water_anchor_points
WHERE medium = $1
ORDER BY temperature_c`

const seedQuery = `
INSERT INTO water_anchor_points (id, medium, temperature_c, density, kinematic_viscosity, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (medium, temperature_c) DO NOTHING`

// Postgres serves anchor points from a postgres table. Property columns
// are NUMERIC and scanned straight into decimals, so values survive the
// round trip without passing through binary floats.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to databaseURL and verifies the connection. The
// decimal codec is registered on every pooled connection.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// EnsureSchema creates the anchor point table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("create water_anchor_points table: %w", err)
	}
	return nil
}

// Seed inserts the given anchor points, skipping (medium, temperature)
// pairs that already exist. Returns the number of rows inserted.
func (p *Postgres) Seed(ctx context.Context, points []water.AnchorPoint) (int, error) {
	inserted := 0
	for _, point := range points {
		tag, err := p.pool.Exec(ctx, seedQuery,
			uuid.New(), string(point.Medium), point.TemperatureC,
			point.Density, point.KinematicViscosity, clock.Now().UTC())
		if err != nil {
			return inserted, fmt.Errorf("seed anchor point %s/%s°C: %w", point.Medium, point.TemperatureC, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// FetchAnchorPoints implements water.AnchorSource.
func (p *Postgres) FetchAnchorPoints(ctx context.Context, medium water.Medium) ([]water.AnchorPoint, error) {
	rows, err := p.pool.Query(ctx, fetchQuery, string(medium))
	if err != nil {
		return nil, fmt.Errorf("query anchor points: %w", err)
	}
	defer rows.Close()

	var points []water.AnchorPoint
	for rows.Next() {
		var (
			point water.AnchorPoint
			m     string
		)
		if err := rows.Scan(&m, &point.TemperatureC, &point.Density, &point.KinematicViscosity); err != nil {
			return nil, fmt.Errorf("scan anchor point: %w", err)
		}
		point.Medium = water.Medium(m)
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate anchor points: %w", err)
	}
	return points, nil
}
