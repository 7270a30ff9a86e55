package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"cook-assistant/internal/core/session"
	"cook-assistant/internal/core/shopping"
	"cook-assistant/internal/infrastructure/config"
	"cook-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Debug:   false,
			Version: "test",
			Env:     "test",
		},
		Spoonacular: config.SpoonacularConfig{
			Enabled: false, // 測試走本地備援表
			Number:  5,
		},
		Session: config.SessionConfig{
			Store: "memory",
			TTL:   time.Hour,
		},
		Cache: config.CacheConfig{
			Enabled: false,
		},
	}
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := testConfig()
	store := session.NewMemoryStore(cfg)
	t.Cleanup(func() { store.Close() })

	router, err := SetupRouter(cfg, store, nil)
	require.NoError(t, err)
	return router
}

func doRequest(router *gin.Engine, method, path, sessionID, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDetectionsToShoppingListFlow(t *testing.T) {
	router := setupTestRouter(t)
	sid := "flow-session"

	// 上報偵測結果：person 不是食材，hot dog 映射為 sausage
	w := doRequest(router, http.MethodPost, "/api/v1/pantry/detections", sid, `{
		"detections": [
			{"label": "hot dog", "confidence": 0.91, "bounding_box": [10, 10, 80, 40]},
			{"label": "person", "confidence": 0.99},
			{"label": "wine glass", "confidence": 0.77}
		]
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var pantryResp struct {
		SessionID string   `json:"session_id"`
		Pantry    []string `json:"pantry"`
		Detected  []string `json:"detected"`
		Added     int      `json:"added"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pantryResp))
	assert.Equal(t, sid, pantryResp.SessionID)
	assert.Equal(t, []string{"sausage", "wine"}, pantryResp.Detected)
	assert.Equal(t, []string{"sausage", "wine"}, pantryResp.Pantry)
	assert.Equal(t, 2, pantryResp.Added)

	// 手動補上 tomato
	w = doRequest(router, http.MethodPost, "/api/v1/pantry/ingredients", sid, `{"names": ["Tomato"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pantryResp))
	assert.Equal(t, []string{"sausage", "wine", "tomato"}, pantryResp.Pantry)

	// 搜尋食譜：Spoonacular 未啟用，走本地備援表
	w = doRequest(router, http.MethodPost, "/api/v1/recipes/search", sid, "")
	require.Equal(t, http.StatusOK, w.Code)

	var searchResp struct {
		Fallback bool `json:"fallback"`
		Recipes  []struct {
			Title string `json:"title"`
		} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &searchResp))
	assert.True(t, searchResp.Fallback)
	require.Len(t, searchResp.Recipes, 1)
	assert.Equal(t, "Tomato Pasta", searchResp.Recipes[0].Title)

	// 選定食譜（missedIngredients 混合字串與物件兩種形狀）
	w = doRequest(router, http.MethodPut, "/api/v1/recipes/selected", sid, `{
		"id": 2,
		"title": "Tomato Pasta",
		"missedIngredientCount": 2,
		"missedIngredients": ["pasta", {"name": "basil"}]
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	// 查詢購物清單
	w = doRequest(router, http.MethodGet, "/api/v1/shopping", sid, "")
	require.Equal(t, http.StatusOK, w.Code)

	var shoppingResp struct {
		Recipe     string   `json:"recipe"`
		Items      []string `json:"items"`
		Categories []struct {
			Category string   `json:"category"`
			Items    []string `json:"items"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shoppingResp))
	assert.Equal(t, "Tomato Pasta", shoppingResp.Recipe)
	assert.Equal(t, []string{"pasta", "basil"}, shoppingResp.Items)
	require.Len(t, shoppingResp.Categories, 2)
	assert.Equal(t, "Pantry", shoppingResp.Categories[0].Category)
	assert.Equal(t, []string{"pasta"}, shoppingResp.Categories[0].Items)
	assert.Equal(t, "Other", shoppingResp.Categories[1].Category)
	assert.Equal(t, []string{"basil"}, shoppingResp.Categories[1].Items)

	// 匯出 Markdown 勾選清單，項目可完整還原
	w = doRequest(router, http.MethodGet, "/api/v1/shopping/export?format=markdown", sid, "")
	require.Equal(t, http.StatusOK, w.Code)
	title, items := shopping.ParseChecklist(w.Body.String())
	assert.Equal(t, shopping.DefaultListTitle, title)
	assert.Equal(t, []string{"pasta", "basil"}, items)

	// 匯出純文字
	w = doRequest(router, http.MethodGet, "/api/v1/shopping/export?format=text", sid, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pasta\nbasil", w.Body.String())
}

func TestSearchWithEmptyPantry(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/recipes/search", "empty-session", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_PANTRY")
}

func TestShoppingListWithoutSelectedRecipe(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/shopping", "no-recipe-session", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NO_RECIPE_SELECTED")
}

func TestRemoveAndClearPantry(t *testing.T) {
	router := setupTestRouter(t)
	sid := "remove-session"

	w := doRequest(router, http.MethodPost, "/api/v1/pantry/ingredients", sid, `{"names": ["tomato", "onion"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	// 移除單一食材
	w = doRequest(router, http.MethodDelete, "/api/v1/pantry/ingredients/tomato", sid, "")
	require.Equal(t, http.StatusOK, w.Code)

	var pantryResp struct {
		Pantry []string `json:"pantry"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pantryResp))
	assert.Equal(t, []string{"onion"}, pantryResp.Pantry)

	// 移除不存在的食材
	w = doRequest(router, http.MethodDelete, "/api/v1/pantry/ingredients/tomato", sid, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 清空
	w = doRequest(router, http.MethodDelete, "/api/v1/pantry", sid, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pantryResp))
	assert.Empty(t, pantryResp.Pantry)
}

func TestSessionIDGeneratedWhenMissing(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/pantry", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Session-ID"))
}

func TestExportUnsupportedFormat(t *testing.T) {
	router := setupTestRouter(t)
	sid := "export-session"

	w := doRequest(router, http.MethodPut, "/api/v1/recipes/selected", sid, `{"title": "Any", "missedIngredients": ["salt"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/shopping/export?format=pdf", sid, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FORMAT")
}
