package quotecache

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"StockMind/internal/domain/models"
	"StockMind/internal/domain/repository"
	pkgch "StockMind/pkg/clickhouse"
)

// ClickHouseStore persists bar series in a columnar table. Every Put
// inserts the full series under a new written_at version; Get reads the
// newest version, so overwrite is last-write-wins without deletes.
type ClickHouseStore struct {
	db    *sql.DB
	table string
}

func NewClickHouseStore(ctx context.Context, client *pkgch.Client, database string) (*ClickHouseStore, error) {
	table := database + ".quote_bars"
	stmts := []string{
		"CREATE DATABASE IF NOT EXISTS " + database,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			symbol     String,
			written_at DateTime64(9),
			ts         DateTime64(9),
			open       Float64,
			high       Float64,
			low        Float64,
			close      Float64,
			volume     Float64
		) ENGINE = MergeTree ORDER BY (symbol, written_at, ts)`, table),
	}
	if err := client.InitSchema(ctx, stmts); err != nil {
		return nil, err
	}
	return &ClickHouseStore{db: client.DB(), table: table}, nil
}

func (s *ClickHouseStore) Get(ctx context.Context, symbol string) (models.Series, time.Time, error) {
	sym := strings.ToUpper(symbol)
	query := fmt.Sprintf(`SELECT written_at, ts, open, high, low, close, volume
		FROM %s
		WHERE symbol = ? AND written_at = (SELECT max(written_at) FROM %s WHERE symbol = ?)
		ORDER BY ts`, s.table, s.table)

	rows, err := s.db.QueryContext(ctx, query, sym, sym)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("clickhouse select: %w", err)
	}
	defer rows.Close()

	var series models.Series
	var writtenAt time.Time
	for rows.Next() {
		var bar models.Bar
		if err := rows.Scan(&writtenAt, &bar.Time, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, time.Time{}, fmt.Errorf("clickhouse scan: %w", err)
		}
		bar.Time = bar.Time.UTC()
		series = append(series, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}
	if len(series) == 0 {
		return nil, time.Time{}, repository.ErrCacheMiss
	}
	return series, writtenAt.UTC(), nil
}

func (s *ClickHouseStore) Put(ctx context.Context, symbol string, series models.Series) error {
	sym := strings.ToUpper(symbol)
	writtenAt := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("clickhouse begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (symbol, written_at, ts, open, high, low, close, volume) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", s.table))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clickhouse prepare: %w", err)
	}
	defer stmt.Close()

	for _, bar := range series {
		if _, err := stmt.ExecContext(ctx, sym, writtenAt, bar.Time, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clickhouse insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("clickhouse commit: %w", err)
	}
	return nil
}

var _ repository.QuoteCache = (*ClickHouseStore)(nil)
