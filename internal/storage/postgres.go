package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"points-redemption-engine/internal/config"
)

type Store struct {
	pool *pgxpool.Pool
}

// RateRows are operator overrides for the built-in rate tables. Each slice
// may be empty; the engine overlays whatever is present onto the defaults.
type RateRows struct {
	Award     []AwardRow
	Hotel     []HotelRateRow
	GiftCards []GiftCardRow
}

type AwardRow struct {
	Route  string
	Cabin  string
	Points int64
}

type HotelRateRow struct {
	Tier          string
	CentsPerPoint float64
}

type GiftCardRow struct {
	Brand           string
	PointsPerDollar float64
}

func New(ctx context.Context, cfg config.Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.Postgres.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Postgres.MaxIdleConns)
	poolCfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// LoadRates loads every rate override row.
func (s *Store) LoadRates(ctx context.Context) (RateRows, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out RateRows

	rows, err := s.pool.Query(ctx, `SELECT route, cabin, points FROM award_chart`)
	if err != nil {
		return RateRows{}, fmt.Errorf("query award_chart: %w", err)
	}
	for rows.Next() {
		var r AwardRow
		if err := rows.Scan(&r.Route, &r.Cabin, &r.Points); err != nil {
			rows.Close()
			return RateRows{}, fmt.Errorf("scan award row: %w", err)
		}
		out.Award = append(out.Award, r)
	}
	rows.Close()
	if rows.Err() != nil {
		return RateRows{}, rows.Err()
	}

	rows, err = s.pool.Query(ctx, `SELECT tier, cents_per_point FROM hotel_rates`)
	if err != nil {
		return RateRows{}, fmt.Errorf("query hotel_rates: %w", err)
	}
	for rows.Next() {
		var r HotelRateRow
		if err := rows.Scan(&r.Tier, &r.CentsPerPoint); err != nil {
			rows.Close()
			return RateRows{}, fmt.Errorf("scan hotel rate row: %w", err)
		}
		out.Hotel = append(out.Hotel, r)
	}
	rows.Close()
	if rows.Err() != nil {
		return RateRows{}, rows.Err()
	}

	rows, err = s.pool.Query(ctx, `SELECT brand, points_per_dollar FROM gift_card_rates`)
	if err != nil {
		return RateRows{}, fmt.Errorf("query gift_card_rates: %w", err)
	}
	for rows.Next() {
		var r GiftCardRow
		if err := rows.Scan(&r.Brand, &r.PointsPerDollar); err != nil {
			rows.Close()
			return RateRows{}, fmt.Errorf("scan gift card row: %w", err)
		}
		out.GiftCards = append(out.GiftCards, r)
	}
	rows.Close()
	if rows.Err() != nil {
		return RateRows{}, rows.Err()
	}

	return out, nil
}

func (s *Store) ListenChannel() string {
	return "rate_data_change"
}

func (s *Store) PgxPool() *pgxpool.Pool {
	if s.pool == nil {
		panic(errors.New("pgx pool is nil"))
	}
	return s.pool
}
