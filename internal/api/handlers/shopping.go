package handlers

import (
	"net/http"

	"cook-assistant/internal/core/recipe"
	"cook-assistant/internal/core/session"
	"cook-assistant/internal/core/shopping"
	"cook-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShoppingHandler 購物清單處理器
type ShoppingHandler struct {
	store session.Store
}

// NewShoppingHandler 創建購物清單處理器
func NewShoppingHandler(store session.Store) *ShoppingHandler {
	return &ShoppingHandler{store: store}
}

// ShoppingResponse 購物清單響應
// Items 為依序去重後的缺少食材；Categories 依固定分區順序輸出
type ShoppingResponse struct {
	SessionID  string           `json:"session_id"`
	Recipe     string           `json:"recipe"`
	Items      []string         `json:"items"`
	Categories []shopping.Group `json:"categories"`
}

// shoppingList 計算目前 session 的購物清單
// 購物清單是衍生資料，每次從 (選定食譜, 食材清單) 重新計算
func (h *ShoppingHandler) shoppingList(c *gin.Context, id string) (*session.Session, []string, bool) {
	sess, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		common.LogError("Failed to get session", zap.Error(err), zap.String("session_id", id))
		abortWithError(c, common.ErrSessionStoreError)
		return nil, nil, false
	}

	if sess.Selected == nil {
		abortWithError(c, common.ErrNoRecipeSelected)
		return nil, nil, false
	}

	missing := recipe.MissingIngredients(sess.Selected, sess.Pantry)
	return sess, shopping.Dedupe(missing), true
}

// HandleGetShoppingList 查詢購物清單
func (h *ShoppingHandler) HandleGetShoppingList(c *gin.Context) {
	id := sessionID(c)

	sess, items, ok := h.shoppingList(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ShoppingResponse{
		SessionID:  id,
		Recipe:     sess.Selected.Title,
		Items:      items,
		Categories: shopping.Categorize(items),
	})
}

// HandleExport 匯出購物清單
// format=text 輸出純文字（一行一項）；format=markdown 輸出勾選清單
func (h *ShoppingHandler) HandleExport(c *gin.Context) {
	id := sessionID(c)

	_, items, ok := h.shoppingList(c, id)
	if !ok {
		return
	}

	switch c.DefaultQuery("format", "text") {
	case "text":
		c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(shopping.RenderText(items)))
	case "markdown":
		c.Header("Content-Disposition", `attachment; filename="shopping_list.md"`)
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(shopping.RenderChecklist(shopping.DefaultListTitle, items)))
	default:
		abortWithError(c, common.ErrUnsupportedFormat)
	}
}
