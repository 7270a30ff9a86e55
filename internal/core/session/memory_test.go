package session

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"cook-assistant/internal/core/recipe"
	"cook-assistant/internal/infrastructure/config"
	"cook-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func storeConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			Store: "memory",
			TTL:   time.Hour,
		},
	}
}

func TestMemoryStoreGetCreatesSession(t *testing.T) {
	store := NewMemoryStore(storeConfig())
	defer store.Close()

	sess, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", sess.ID)
	assert.NotNil(t, sess.Pantry)
	assert.Equal(t, 0, sess.Pantry.Len())
	assert.Nil(t, sess.Selected)
}

func TestMemoryStoreUpdate(t *testing.T) {
	store := NewMemoryStore(storeConfig())
	defer store.Close()

	sess, err := store.Update(context.Background(), "s1", func(s *Session) error {
		s.Pantry.Add("tomato", "onion")
		s.Selected = &recipe.Recipe{Title: "Tomato Pasta"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tomato", "onion"}, sess.Pantry.Items())

	// 變動在後續 Get 可見
	loaded, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tomato", "onion"}, loaded.Pantry.Items())
	require.NotNil(t, loaded.Selected)
	assert.Equal(t, "Tomato Pasta", loaded.Selected.Title)
}

func TestMemoryStoreGetReturnsClone(t *testing.T) {
	store := NewMemoryStore(storeConfig())
	defer store.Close()

	_, err := store.Update(context.Background(), "s1", func(s *Session) error {
		s.Pantry.Add("tomato")
		return nil
	})
	require.NoError(t, err)

	// 繞過 Store 修改複本，不影響儲存的狀態
	sess, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	sess.Pantry.Add("onion")

	loaded, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tomato"}, loaded.Pantry.Items())
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	store := NewMemoryStore(storeConfig())
	defer store.Close()

	_, err := store.Update(context.Background(), "s1", func(s *Session) error {
		s.Pantry.Add("tomato")
		return nil
	})
	require.NoError(t, err)

	other, err := store.Get(context.Background(), "s2")
	require.NoError(t, err)
	assert.Equal(t, 0, other.Pantry.Len())
}

func TestMemoryStoreConcurrentUpdates(t *testing.T) {
	store := NewMemoryStore(storeConfig())
	defer store.Close()

	// 同一 session 的變動序列化執行，交錯寫入不會遺失
	var wg sync.WaitGroup
	names := []string{"tomato", "onion", "garlic", "carrot", "potato"}
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := store.Update(context.Background(), "s1", func(s *Session) error {
				s.Pantry.Add(name)
				return nil
			})
			assert.NoError(t, err)
		}(name)
	}
	wg.Wait()

	sess, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, len(names), sess.Pantry.Len())
}

func TestMemoryStoreUpdateError(t *testing.T) {
	store := NewMemoryStore(storeConfig())
	defer store.Close()

	_, err := store.Update(context.Background(), "s1", func(s *Session) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}
