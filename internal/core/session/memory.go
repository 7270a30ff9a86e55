package session

import (
	"context"
	"sync"
	"time"

	"cook-assistant/internal/infrastructure/config"
	"cook-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore 行程內的會話儲存，單機部署的預設選項
type MemoryStore struct {
	config  *config.Config
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	done    chan struct{}
	once    sync.Once
}

// memoryEntry 單一會話的條目；mu 保證該會話的變動序列化執行
type memoryEntry struct {
	mu        sync.Mutex
	session   *Session
	expiresAt time.Time
}

// NewMemoryStore 創建記憶體會話儲存
func NewMemoryStore(cfg *config.Config) *MemoryStore {
	s := &MemoryStore{
		config:  cfg,
		entries: make(map[string]*memoryEntry),
		done:    make(chan struct{}),
	}

	// 啟動清理過期會話的協程
	go s.startCleanup()

	return s
}

// entry 取得或創建會話條目
func (s *MemoryStore) entry(id string) *memoryEntry {
	s.mu.RLock()
	e, exists := s.entries[id]
	s.mu.RUnlock()
	if exists {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, exists = s.entries[id]; exists {
		return e
	}
	e = &memoryEntry{
		session:   New(id),
		expiresAt: time.Now().Add(s.config.Session.TTL),
	}
	s.entries[id] = e
	return e
}

// Get 回傳會話狀態的複本
func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	e := s.entry(id)

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

// Update 以單一擁有者語義變動會話狀態
func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	e := s.entry(id)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.session); err != nil {
		return nil, err
	}

	e.session.UpdatedAt = time.Now()
	e.expiresAt = time.Now().Add(s.config.Session.TTL)
	return e.session.Clone(), nil
}

// startCleanup 啟動清理過期會話的協程
func (s *MemoryStore) startCleanup() {
	interval := s.config.Session.TTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup 清理過期的會話
func (s *MemoryStore) cleanup() {
	now := time.Now()
	count := 0

	s.mu.Lock()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			count++
		}
	}
	s.mu.Unlock()

	if count > 0 {
		common.LogInfo("過期會話已清理",
			zap.Int("清理數量", count),
		)
	}
}

// Close 關閉會話儲存
func (s *MemoryStore) Close() error {
	s.once.Do(func() {
		close(s.done)
	})

	s.mu.Lock()
	s.entries = make(map[string]*memoryEntry)
	s.mu.Unlock()
	return nil
}
