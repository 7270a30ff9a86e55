package session

import (
	"context"
	"fmt"

	"cook-assistant/internal/infrastructure/config"
)

// Store 會話狀態儲存介面
//
// Get 回傳會話狀態的複本；id 不存在時回傳全新的會話，不是錯誤
// Update 以單一擁有者語義執行變動：同一 session 的變動序列化執行，
// 避免 add/remove 交錯競爭
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Close() error
}

// NewStore 依設定創建會話儲存
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.Session.Store {
	case "memory":
		return NewMemoryStore(cfg), nil
	case "redis":
		return NewRedisStore(cfg)
	default:
		return nil, fmt.Errorf("unknown session store: %s", cfg.Session.Store)
	}
}
