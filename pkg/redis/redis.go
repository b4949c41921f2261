package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Dydymerho/SMD-Project-sub002/config"
)

// Client Redis 客户端封装
// 当前用于 Token 黑名单、接口限流与教学大纲草稿暂存
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 接口限流（固定窗口计数） ──

// CheckRateLimit 检查并记录一次请求，返回是否放行
// key 由调用方构造（通常为 ip+path），limit/window 为窗口配额
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		// 窗口内首次请求，设置过期
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── 教学大纲草稿暂存 ──

const draftPrefix = "syllabus:draft:"

// SaveDraft 保存草稿 JSON，TTL 到期自动清理
func (c *Client) SaveDraft(ctx context.Context, userID, draftID string, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, draftPrefix+userID+":"+draftID, data, ttl).Err()
}

// GetDraft 读取草稿 JSON；不存在时返回 goredis.Nil 错误
func (c *Client) GetDraft(ctx context.Context, userID, draftID string) ([]byte, error) {
	return c.rdb.Get(ctx, draftPrefix+userID+":"+draftID).Bytes()
}

// DeleteDraft 删除草稿
func (c *Client) DeleteDraft(ctx context.Context, userID, draftID string) error {
	return c.rdb.Del(ctx, draftPrefix+userID+":"+draftID).Err()
}

// IsNil 判断错误是否为键不存在
func IsNil(err error) bool {
	return err == goredis.Nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
