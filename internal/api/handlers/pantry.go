package handlers

import (
	"net/http"

	"cook-assistant/internal/core/detect"
	"cook-assistant/internal/core/session"
	"cook-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PantryHandler 食材清單處理器
type PantryHandler struct {
	store      session.Store
	normalizer *detect.Normalizer
}

// NewPantryHandler 創建食材清單處理器
func NewPantryHandler(store session.Store, normalizer *detect.Normalizer) *PantryHandler {
	return &PantryHandler{
		store:      store,
		normalizer: normalizer,
	}
}

// DetectionsRequest 偵測結果上報請求
type DetectionsRequest struct {
	Detections []detect.Detection `json:"detections" binding:"required"`
}

// PantryResponse 食材清單響應
type PantryResponse struct {
	SessionID string   `json:"session_id"`
	Pantry    []string `json:"pantry"`
	Detected  []string `json:"detected,omitempty"` // 本次偵測標準化後的食材
	Added     int      `json:"added,omitempty"`    // 本次實際新增的數量
}

// HandleDetections 處理偵測結果上報
// 將外部偵測模型的原始輸出標準化後併入 session 食材清單
// 沒有任何可辨識的食材是正常結果，不是錯誤
func (h *PantryHandler) HandleDetections(c *gin.Context) {
	id := sessionID(c)

	var req DetectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("Invalid detections payload",
			zap.Error(err),
			zap.String("session_id", id),
		)
		abortWithError(c, common.ErrInvalidDetection)
		return
	}

	detected := h.normalizer.Normalize(req.Detections)

	added := 0
	sess, err := h.store.Update(c.Request.Context(), id, func(s *session.Session) error {
		added = s.Pantry.Add(detected...)
		return nil
	})
	if err != nil {
		common.LogError("Failed to update session", zap.Error(err), zap.String("session_id", id))
		abortWithError(c, common.ErrSessionStoreError)
		return
	}

	common.LogInfo("偵測結果已併入食材清單",
		zap.String("session_id", id),
		zap.Int("偵測筆數", len(req.Detections)),
		zap.Int("辨識食材數", len(detected)),
		zap.Int("實際新增", added),
	)

	c.JSON(http.StatusOK, PantryResponse{
		SessionID: id,
		Pantry:    sess.Pantry.Items(),
		Detected:  detected,
		Added:     added,
	})
}

// AddIngredientsRequest 手動加入食材請求
type AddIngredientsRequest struct {
	Names []string `json:"names" binding:"required"`
}

// HandleAddIngredients 手動加入食材
func (h *PantryHandler) HandleAddIngredients(c *gin.Context) {
	id := sessionID(c)

	var req AddIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, common.ErrInvalidRequest)
		return
	}

	added := 0
	sess, err := h.store.Update(c.Request.Context(), id, func(s *session.Session) error {
		added = s.Pantry.Add(req.Names...)
		return nil
	})
	if err != nil {
		common.LogError("Failed to update session", zap.Error(err), zap.String("session_id", id))
		abortWithError(c, common.ErrSessionStoreError)
		return
	}

	c.JSON(http.StatusOK, PantryResponse{
		SessionID: id,
		Pantry:    sess.Pantry.Items(),
		Added:     added,
	})
}

// HandleGetPantry 查詢目前的食材清單
func (h *PantryHandler) HandleGetPantry(c *gin.Context) {
	id := sessionID(c)

	sess, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		common.LogError("Failed to get session", zap.Error(err), zap.String("session_id", id))
		abortWithError(c, common.ErrSessionStoreError)
		return
	}

	c.JSON(http.StatusOK, PantryResponse{
		SessionID: id,
		Pantry:    sess.Pantry.Items(),
	})
}

// HandleRemoveIngredient 移除單一食材
func (h *PantryHandler) HandleRemoveIngredient(c *gin.Context) {
	id := sessionID(c)
	name := c.Param("name")

	removed := false
	sess, err := h.store.Update(c.Request.Context(), id, func(s *session.Session) error {
		removed = s.Pantry.Remove(name)
		return nil
	})
	if err != nil {
		common.LogError("Failed to update session", zap.Error(err), zap.String("session_id", id))
		abortWithError(c, common.ErrSessionStoreError)
		return
	}

	if !removed {
		abortWithError(c, common.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, PantryResponse{
		SessionID: id,
		Pantry:    sess.Pantry.Items(),
	})
}

// HandleClearPantry 清空食材清單
func (h *PantryHandler) HandleClearPantry(c *gin.Context) {
	id := sessionID(c)

	sess, err := h.store.Update(c.Request.Context(), id, func(s *session.Session) error {
		s.Pantry.Clear()
		return nil
	})
	if err != nil {
		common.LogError("Failed to update session", zap.Error(err), zap.String("session_id", id))
		abortWithError(c, common.ErrSessionStoreError)
		return
	}

	c.JSON(http.StatusOK, PantryResponse{
		SessionID: id,
		Pantry:    sess.Pantry.Items(),
	})
}
