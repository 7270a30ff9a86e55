package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cook-assistant/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// RedisStore Redis 會話儲存，多副本部署時共用會話狀態
// 每個 session 的變動仍在行程內序列化執行；服務假設同一 session
// 的請求由同一副本處理（sticky session）
type RedisStore struct {
	config *config.Config
	client *redis.Client

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRedisStore 創建 Redis 會話儲存
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Session.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		config: cfg,
		client: client,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

// sessionKey 生成會話的 Redis 鍵
func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// lock 取得單一會話的行程內鎖
func (s *RedisStore) lock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, exists := s.locks[id]
	if !exists {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// load 從 Redis 讀取會話；不存在時回傳全新會話
func (s *RedisStore) load(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return New(id), nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	sess.normalize()
	return &sess, nil
}

// save 將會話寫回 Redis 並更新存活時間
func (s *RedisStore) save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.ID), data, s.config.Session.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// Get 回傳會話狀態
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	l := s.lock(id)
	l.Lock()
	defer l.Unlock()

	return s.load(ctx, id)
}

// Update 以單一擁有者語義變動會話狀態
func (s *RedisStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	l := s.lock(id)
	l.Lock()
	defer l.Unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(sess); err != nil {
		return nil, err
	}

	sess.UpdatedAt = time.Now()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Close 關閉 Redis 連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
