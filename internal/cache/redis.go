package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const activeEventsKey = "events:active"

type Config struct {
	Addr        string
	Password    string
	AuthHashKey string
	EventsTTL   time.Duration
}

type Client struct {
	client      *redis.Client
	authHashKey string
	eventsTTL   time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.AuthHashKey == "" {
		cfg.AuthHashKey = "members:auth"
	}
	if cfg.EventsTTL == 0 {
		cfg.EventsTTL = 30 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{
		client:      rdb,
		authHashKey: cfg.AuthHashKey,
		eventsTTL:   cfg.EventsTTL,
	}, nil
}

// GetMemberIDByAuth looks up a member id by basic-auth credentials without
// hitting the database. The hash is keyed by base64(email:passwordHash).
func (c *Client) GetMemberIDByAuth(ctx context.Context, email, passwordHash string) (int64, error) {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	cacheKey := base64.StdEncoding.EncodeToString([]byte(authString))

	memberIDStr, err := c.client.HGet(ctx, c.authHashKey, cacheKey).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, fmt.Errorf("member not found in cache")
		}
		return 0, fmt.Errorf("cache lookup error: %w", err)
	}

	memberID, err := strconv.ParseInt(memberIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid member ID in cache: %w", err)
	}

	return memberID, nil
}

// GetActiveEventsRaw returns the cached active-events list as raw JSON so
// the handler can write it without re-marshaling.
func (c *Client) GetActiveEventsRaw(ctx context.Context) ([]byte, error) {
	return c.client.Get(ctx, activeEventsKey).Bytes()
}

// SetActiveEvents caches the active-events list with a short TTL. Staleness
// is bounded by the TTL only; the crawler's update cadence makes that
// acceptable.
func (c *Client) SetActiveEvents(ctx context.Context, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal events list: %w", err)
	}
	return c.client.Set(ctx, activeEventsKey, data, c.eventsTTL).Err()
}

func (c *Client) Close() error {
	return c.client.Close()
}
