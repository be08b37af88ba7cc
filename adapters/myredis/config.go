package myredis

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisConfig is the optional Redis mirror configuration. An empty Addr disables the mirror.
type RedisConfig struct {
	Addr string
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// NewRedisUniversalClient creates and configures instance of redis universal client.
func NewRedisUniversalClient(redisAddr string, options ...ConfigOption) (redis.UniversalClient, error) {
	redisOptions, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	for _, opt := range options {
		opt(redisOptions)
	}
	return redis.NewUniversalClient(universalOptions(redisOptions)), nil
}

// ConfigOption configures the client.
type ConfigOption func(*redis.Options)

// WithTimeouts bounds dialing and every read/write, so a stalled Redis only delays the mirror goroutine.
func WithTimeouts(timeout time.Duration) ConfigOption {
	return func(o *redis.Options) {
		o.DialTimeout = timeout
		o.ReadTimeout = timeout
		o.WriteTimeout = timeout
	}
}

func universalOptions(options *redis.Options) *redis.UniversalOptions {
	return &redis.UniversalOptions{
		Addrs:        []string{options.Addr},
		DB:           options.DB,
		Username:     options.Username,
		Password:     options.Password,
		WriteTimeout: options.WriteTimeout,
		ReadTimeout:  options.ReadTimeout,
		DialTimeout:  options.DialTimeout,
		MaxRetries:   options.MaxRetries,
		PoolSize:     options.PoolSize,
		PoolTimeout:  options.PoolTimeout,
		MinIdleConns: options.MinIdleConns,
		IdleTimeout:  options.IdleTimeout,
	}
}
