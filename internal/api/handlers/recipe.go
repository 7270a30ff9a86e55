package handlers

import (
	"net/http"

	"cook-assistant/internal/core/recipe"
	"cook-assistant/internal/core/session"
	"cook-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecipeHandler 食譜處理器
type RecipeHandler struct {
	store   session.Store
	service *recipe.Service
}

// NewRecipeHandler 創建食譜處理器
func NewRecipeHandler(store session.Store, service *recipe.Service) *RecipeHandler {
	return &RecipeHandler{
		store:   store,
		service: service,
	}
}

// SearchResponse 食譜搜尋響應
type SearchResponse struct {
	SessionID   string          `json:"session_id"`
	Ingredients []string        `json:"ingredients"`
	Recipes     []recipe.Recipe `json:"recipes"`
	Fallback    bool            `json:"fallback"`
}

// HandleSearch 依目前的食材清單搜尋食譜
func (h *RecipeHandler) HandleSearch(c *gin.Context) {
	id := sessionID(c)

	sess, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		common.LogError("Failed to get session", zap.Error(err), zap.String("session_id", id))
		abortWithError(c, common.ErrSessionStoreError)
		return
	}

	ingredients := sess.Pantry.Items()
	if len(ingredients) == 0 {
		abortWithError(c, common.ErrEmptyPantry)
		return
	}

	result, err := h.service.Search(c.Request.Context(), ingredients)
	if err != nil {
		common.LogError("Recipe search failed", zap.Error(err), zap.String("session_id", id))
		abortWithError(c, common.ErrRecipeAPIError)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		SessionID:   id,
		Ingredients: ingredients,
		Recipes:     result.Recipes,
		Fallback:    result.Fallback,
	})
}

// SelectRecipeResponse 選定食譜響應
type SelectRecipeResponse struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
	Missed    int    `json:"missed_ingredient_count"`
}

// HandleSelectRecipe 選定食譜，之後的購物清單都以它為準
// 食譜記錄視為外部資料，只要求 title 存在；
// 缺少食材欄位是合法狀態，由購物清單端處理
func (h *RecipeHandler) HandleSelectRecipe(c *gin.Context) {
	id := sessionID(c)

	var selected recipe.Recipe
	if err := c.ShouldBindJSON(&selected); err != nil {
		common.LogWarn("Invalid recipe payload",
			zap.Error(err),
			zap.String("session_id", id),
		)
		abortWithError(c, common.ErrInvalidRequest)
		return
	}
	if selected.Title == "" {
		abortWithError(c, common.ErrInvalidRequest)
		return
	}

	_, err := h.store.Update(c.Request.Context(), id, func(s *session.Session) error {
		s.Selected = &selected
		return nil
	})
	if err != nil {
		common.LogError("Failed to update session", zap.Error(err), zap.String("session_id", id))
		abortWithError(c, common.ErrSessionStoreError)
		return
	}

	common.LogInfo("食譜已選定",
		zap.String("session_id", id),
		zap.String("食譜", selected.Title),
	)

	c.JSON(http.StatusOK, SelectRecipeResponse{
		SessionID: id,
		Title:     selected.Title,
		Missed:    selected.MissedIngredientCount,
	})
}
