package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bitprice-service/internal/application"
	"bitprice-service/internal/domain"
	"bitprice-service/internal/infrastructure/logx"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultKey = "bitcoin_prices"

// QuoteStore keeps quotes in a sorted set scored by Unix timestamp.
type QuoteStore struct {
	Client *redis.Client
	Key    string
}

var _ application.QuoteStore = (*QuoteStore)(nil)

type member struct {
	ID        string  `json:"id"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

func New(client *redis.Client, key string) *QuoteStore {
	if key == "" {
		key = DefaultKey
	}
	return &QuoteStore{Client: client, Key: key}
}

func (s *QuoteStore) Append(ctx context.Context, q domain.Quote) error {
	b, err := json.Marshal(member{ID: uuid.NewString(), Price: q.Price, Timestamp: q.Timestamp()})
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	return s.Client.ZAdd(ctx, s.Key, redis.Z{Score: float64(q.Timestamp()), Member: string(b)}).Err()
}

// Recent returns up to limit quotes, newest first. Members that do not decode
// as quotes are skipped and logged rather than failing the read.
func (s *QuoteStore) Recent(ctx context.Context, limit int) ([]domain.Quote, error) {
	out := []domain.Quote{}
	if limit <= 0 {
		return out, nil
	}
	raw, err := s.Client.ZRevRange(ctx, s.Key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	for _, r := range raw {
		var m member
		if err := json.Unmarshal([]byte(r), &m); err != nil || m.Price <= 0 {
			logx.L().Warn("redis_store.skip_member", zap.String("key", s.Key), zap.String("member", r), zap.Error(err))
			continue
		}
		out = append(out, domain.Quote{Price: m.Price, ObservedAt: time.Unix(m.Timestamp, 0).UTC()})
	}
	return out, nil
}

func (s *QuoteStore) Ping(ctx context.Context) error { return s.Client.Ping(ctx).Err() }
