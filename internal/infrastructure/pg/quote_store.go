package pg

import (
	"context"
	"time"

	"bitprice-service/internal/application"
	"bitprice-service/internal/domain"
	"bitprice-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

// recentPrealloc bounds the up-front allocation in Recent; limit comes
// straight from the query string.
const recentPrealloc = 64

type QuoteStore struct{ db *DB }

var _ application.QuoteStore = (*QuoteStore)(nil)

func NewQuoteStore(db *DB) *QuoteStore { return &QuoteStore{db: db} }

func (s *QuoteStore) Append(ctx context.Context, q domain.Quote) error {
	const ins = `INSERT INTO bitcoin_prices(price, "timestamp") VALUES ($1, $2)`
	log := logx.L().With(
		zap.String("repo", "quote_store"),
		zap.String("operation", "Append"),
		zap.Float64("price", q.Price),
		zap.Int64("timestamp", q.Timestamp()),
	)
	tag, err := s.db.Pool.Exec(ctx, ins, q.Price, q.Timestamp())
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	log.Debug("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

func (s *QuoteStore) Recent(ctx context.Context, limit int) ([]domain.Quote, error) {
	const q = `
        SELECT price, "timestamp"
        FROM bitcoin_prices
        ORDER BY "timestamp" DESC, id DESC
        LIMIT $1`
	log := logx.L().With(
		zap.String("repo", "quote_store"),
		zap.String("operation", "Recent"),
		zap.Int("limit", limit),
	)
	rows, err := s.db.Pool.Query(ctx, q, limit)
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Quote, 0, min(limit, recentPrealloc))
	for rows.Next() {
		var (
			price float64
			ts    int64
		)
		if err := rows.Scan(&price, &ts); err != nil {
			log.Error("sql.scan_failed", zap.Error(err))
			return nil, err
		}
		out = append(out, domain.Quote{Price: price, ObservedAt: time.Unix(ts, 0).UTC()})
	}
	if err := rows.Err(); err != nil {
		log.Error("sql.rows_failed", zap.Error(err))
		return nil, err
	}
	log.Debug("sql.query_success", zap.Int("rows", len(out)))
	return out, nil
}

func (s *QuoteStore) Ping(ctx context.Context) error { return s.db.Ping(ctx) }
