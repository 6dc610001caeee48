package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// RateLimitRepository counts attempts per subject in a sliding window.
type RateLimitRepository interface {
	// Allow records one attempt and reports whether it is within the limit. When it is not,
	// retryAfter is the number of seconds until the oldest attempt leaves the window.
	Allow(ctx context.Context, subject string) (allowed bool, retryAfter int, err error)
}

type redisRepository struct {
	client *redis.Client
	cfg    *config.RateConfig
	now    func() time.Time
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Successfully connected to Redis")

	return client, nil
}

func NewRateLimitRepo(client *redis.Client, cfg *config.RateConfig) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg, now: time.Now}
}

func couponAttemptsKey(subject string) string {
	return "coupon_attempts:" + subject
}

// Allow keeps one sorted-set member per attempt, scored by its unix second. Members are
// nanosecond stamps so attempts within the same second are counted separately.
func (r *redisRepository) Allow(ctx context.Context, subject string) (bool, int, error) {
	logger := middleware.LoggerFromContext(ctx)

	key := couponAttemptsKey(subject)
	now := r.now()
	window := int64(r.cfg.WindowSize.Seconds())
	windowStart := now.Unix() - window

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: strconv.FormatInt(now.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()
	if attempts <= r.cfg.MaxAttempts {
		logger.Debug("Rate limit check passed", slog.String("key", key), slog.Int64("attempts", attempts))

		return true, 0, nil
	}

	oldest, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil || len(oldest) == 0 {
		logger.Warn("Failed to read oldest attempt, using full window", slog.String("key", key), slog.Any("error", err))

		return false, int(window), nil
	}

	retryAfter := max(int64(oldest[0].Score)+window-now.Unix(), 0)

	logger.Warn("Rate limit exceeded", slog.String("key", key), slog.Int64("attempts", attempts))

	return false, int(retryAfter), nil
}
