package recipe

import (
	"context"
	"errors"
	"os"
	"testing"

	"cook-assistant/internal/infrastructure/config"
	"cook-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	// 服務層會寫日誌，測試時用 no-op logger
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

// stubSearcher 測試用搜尋器
type stubSearcher struct {
	recipes []Recipe
	err     error
	calls   int
}

func (s *stubSearcher) FindByIngredients(ctx context.Context, ingredients []string) ([]Recipe, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.recipes, nil
}

func serviceConfig() *config.Config {
	return &config.Config{
		Spoonacular: config.SpoonacularConfig{Number: 5},
	}
}

func TestSearchUsesSearcher(t *testing.T) {
	stub := &stubSearcher{recipes: []Recipe{{ID: 7, Title: "Omelette"}}}
	svc := NewServiceWithSearcher(serviceConfig(), stub, nil)

	result, err := svc.Search(context.Background(), []string{"egg"})
	require.NoError(t, err)
	assert.False(t, result.Fallback)
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "Omelette", result.Recipes[0].Title)
}

func TestSearchFallsBackOnAPIError(t *testing.T) {
	stub := &stubSearcher{err: errors.New("connection refused")}
	svc := NewServiceWithSearcher(serviceConfig(), stub, nil)

	// API 失敗不往上拋，改用本地備援表
	result, err := svc.Search(context.Background(), []string{"tomato"})
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "Tomato Pasta", result.Recipes[0].Title)
}

func TestSearchWithoutSearcherUsesFallback(t *testing.T) {
	svc := NewServiceWithSearcher(serviceConfig(), nil, nil)

	result, err := svc.Search(context.Background(), []string{"apple", "tomato"})
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	require.Len(t, result.Recipes, 2)
	assert.Equal(t, "Apple Salad", result.Recipes[0].Title)
	assert.Equal(t, "Tomato Pasta", result.Recipes[1].Title)
}

func TestSearchNoMatchesReturnsEmptyList(t *testing.T) {
	svc := NewServiceWithSearcher(serviceConfig(), nil, nil)

	result, err := svc.Search(context.Background(), []string{"durian"})
	require.NoError(t, err)
	assert.NotNil(t, result.Recipes)
	assert.Empty(t, result.Recipes)
}

func TestFallbackSearchLimit(t *testing.T) {
	recipes := FallbackSearch([]string{"apple", "tomato"}, 1)
	assert.Len(t, recipes, 1)
}
