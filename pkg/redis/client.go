package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config 定義 Redis 連線配置
type Config struct {
	Addr     string // Redis 伺服器地址 (e.g., "localhost:6379")
	Password string // Redis 密碼 (若無則留空)
	DB       int    // 使用的資料庫編號
}

// Client 封裝 redis.Client 以提供更簡易的介面
type Client struct {
	rdb *redis.Client
}

// NewClient 建立並回傳一個新的 Redis 客戶端實例
//
// 參數:
//
//	cfg: Config - Redis 連線配置資訊
//
// 回傳值:
//
//	*Client: 封裝後的 Redis 客戶端實例
//	error: 若連線失敗則回傳錯誤
func NewClient(cfg Config) (*Client, error) {

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連線
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close 關閉 Redis 連線
func (c *Client) Close() error {
	return c.rdb.Close()
}

// IsNil 判斷錯誤是否為「鍵或欄位不存在」
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// HGet 取得 hash 中指定欄位的值
//
// 參數:
//
//	ctx: context.Context - 上下文
//	key: string - hash 鍵
//	field: string - 欄位名稱
//
// 回傳值:
//
//	string: 欄位值
//	error: 欄位不存在時回傳的錯誤可用 IsNil 判斷
func (c *Client) HGet(ctx context.Context, key, field string) (string, error) {
	return c.rdb.HGet(ctx, key, field).Result()
}

// HSet 設定 hash 中指定欄位的值
func (c *Client) HSet(ctx context.Context, key, field string, value any) error {
	return c.rdb.HSet(ctx, key, field, value).Err()
}

// HExists 檢查 hash 中是否存在指定欄位
func (c *Client) HExists(ctx context.Context, key, field string) (bool, error) {
	return c.rdb.HExists(ctx, key, field).Result()
}

// HIncrByFloat 以浮點數增量更新 hash 欄位 (原子操作)
//
// 回傳值:
//
//	float64: 更新後的欄位值
//	error: 若更新失敗則回傳錯誤
func (c *Client) HIncrByFloat(ctx context.Context, key, field string, incr float64) (float64, error) {
	return c.rdb.HIncrByFloat(ctx, key, field, incr).Result()
}

// AcquireLock 嘗試獲取分散式鎖 (使用 SETNX)
//
// 參數:
//
//	ctx: context.Context - 上下文
//	key: string - 鎖的鍵名
//	value: string - 鎖的持有者標識 (通常是 uuid，用於釋放時驗證)
//	expiration: ...time.Duration - (選填) 鎖的自動過期時間，為了安全起見，強烈建議設定。若不填則預設為 0 (需謹慎使用)
//
// 回傳值:
//
//	bool: 是否成功獲取鎖
//	error: Redis 系統錯誤
func (c *Client) AcquireLock(ctx context.Context, key string, value string, expiration ...time.Duration) (bool, error) {
	var exp time.Duration
	if len(expiration) > 0 {
		exp = expiration[0]
	}

	success, err := c.rdb.SetNX(ctx, key, value, exp).Result()
	if err != nil {
		return false, err
	}
	return success, nil
}

// ReleaseLock 釋放分散式鎖
// 只有當鎖的值與傳入的 value 相符時才會刪除，確保不會釋放別人的鎖。
//
// 參數:
//
//	ctx: context.Context - 上下文
//	key: string - 鎖的鍵名
//	value: string - 鎖的持有者標識
func (c *Client) ReleaseLock(ctx context.Context, key string, value string) error {
	// 使用 Lua script 確保原子性檢查與刪除
	script := `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`
	_, err := c.rdb.Eval(ctx, script, []string{key}, value).Result()
	return err
}
