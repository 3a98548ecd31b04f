package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// NewClient creates a go-redis client and checks connectivity.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return rdb, nil
}

// Store keeps the mirror document under one key and announces every write
// on a pub/sub channel.
type Store struct {
	rdb     *redis.Client
	key     string
	channel string
}

func New(rdb *redis.Client, key, channel string) *Store {
	return &Store{rdb: rdb, key: key, channel: channel}
}

// Write overwrites the document and publishes it to subscribers.
func (s *Store) Write(ctx context.Context, doc []byte) error {
	if err := s.rdb.Set(ctx, s.key, doc, 0).Err(); err != nil {
		return fmt.Errorf("writing mirror document: %w", err)
	}

	if err := s.rdb.Publish(ctx, s.channel, doc).Err(); err != nil {
		return fmt.Errorf("publishing mirror document: %w", err)
	}

	return nil
}

// Read returns the current document, or nil when none has been written.
func (s *Store) Read(ctx context.Context) ([]byte, error) {
	doc, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading mirror document: %w", err)
	}

	return doc, nil
}

// Subscribe calls fn with every published document until the returned func is called.
func (s *Store) Subscribe(ctx context.Context, fn func(doc []byte)) (func() error, error) {
	ps := s.rdb.Subscribe(ctx, s.channel)

	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribing to %s: %w", s.channel, err)
	}

	ch := ps.Channel()

	go func() {
		for msg := range ch {
			fn([]byte(msg.Payload))
		}

		slog.Debug("mirror subscription closed", "channel", s.channel)
	}()

	return ps.Close, nil
}
