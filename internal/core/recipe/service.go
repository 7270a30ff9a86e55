package recipe

import (
	"context"
	"strings"
	"time"

	"cook-assistant/internal/core/cache"
	"cook-assistant/internal/infrastructure/config"
	"cook-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// Searcher 食譜搜尋介面，方便測試替換
type Searcher interface {
	FindByIngredients(ctx context.Context, ingredients []string) ([]Recipe, error)
}

// Service 食譜搜尋服務
// 先查快取，其次呼叫 Spoonacular，API 失敗或未啟用時退回本地備援表
type Service struct {
	config       *config.Config
	searcher     Searcher
	cacheManager *cache.Manager
}

// NewService 創建食譜搜尋服務
func NewService(cfg *config.Config, cacheManager *cache.Manager) *Service {
	var searcher Searcher
	if cfg.Spoonacular.Enabled {
		searcher = NewClient(cfg)
	}
	return &Service{
		config:       cfg,
		searcher:     searcher,
		cacheManager: cacheManager,
	}
}

// NewServiceWithSearcher 以自訂搜尋器創建服務，測試用
func NewServiceWithSearcher(cfg *config.Config, searcher Searcher, cacheManager *cache.Manager) *Service {
	return &Service{
		config:       cfg,
		searcher:     searcher,
		cacheManager: cacheManager,
	}
}

// SearchResult 搜尋結果
type SearchResult struct {
	Recipes  []Recipe `json:"recipes"`
	Fallback bool     `json:"fallback"` // 是否來自本地備援表
}

// Search 依食材搜尋食譜
// API 錯誤不往上拋，改用備援表；完全無資料時回傳空清單
func (s *Service) Search(ctx context.Context, ingredients []string) (*SearchResult, error) {
	start := time.Now()
	key := "recipe_search:" + strings.Join(ingredients, ",")

	// 查快取
	if s.cacheManager != nil {
		if cached, err := s.cacheManager.Get(ctx, key); err == nil {
			var result SearchResult
			if err := common.ParseJSON(cached, &result); err != nil {
				common.LogWarn("快取內容解析失敗，改走搜尋流程", zap.Error(err))
			} else {
				return &result, nil
			}
		}
	}

	result := &SearchResult{}

	if s.searcher != nil {
		recipes, err := s.searcher.FindByIngredients(ctx, ingredients)
		if err != nil {
			common.LogWarn("Spoonacular 搜尋失敗，改用本地備援表",
				zap.Error(err),
				zap.Int("食材數量", len(ingredients)),
			)
			result.Recipes = FallbackSearch(ingredients, s.config.Spoonacular.Number)
			result.Fallback = true
		} else {
			result.Recipes = recipes
		}
	} else {
		result.Recipes = FallbackSearch(ingredients, s.config.Spoonacular.Number)
		result.Fallback = true
	}

	if result.Recipes == nil {
		result.Recipes = []Recipe{}
	}

	// 寫入快取
	if s.cacheManager != nil {
		if data, err := common.ToJSON(result); err == nil {
			if err := s.cacheManager.Set(ctx, key, data); err != nil {
				common.LogWarn("快取寫入失敗", zap.Error(err))
			}
		}
	}

	common.LogRecipeSearch(len(ingredients), len(result.Recipes), result.Fallback, time.Since(start), nil)

	return result, nil
}
