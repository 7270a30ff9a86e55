package detect

import (
	"fmt"
	"os"
	"strings"

	"cook-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// Detection 一筆來自外部偵測模型的原始結果
type Detection struct {
	Label       string    `json:"label" binding:"required"`
	Confidence  float64   `json:"confidence"`
	BoundingBox []float64 `json:"bounding_box,omitempty"` // [x1, y1, x2, y2]，僅供前端繪圖使用
}

// Normalizer 將原始偵測結果轉換為標準化的食材名稱集合
type Normalizer struct {
	labelMap map[string]string
}

// DefaultLabelMap 內建的偵測標籤對應表（COCO 類別 → 食材名稱）
// 對應表涵蓋有限，視為可替換的設定資料而非固定的業務規則
func DefaultLabelMap() map[string]string {
	return map[string]string{
		"apple":      "apple",
		"banana":     "banana",
		"orange":     "orange",
		"broccoli":   "broccoli",
		"carrot":     "carrot",
		"hot dog":    "sausage",
		"pizza":      "pizza",
		"donut":      "donut",
		"cake":       "cake",
		"sandwich":   "sandwich",
		"bowl":       "bowl", // 通常裝著食物
		"bottle":     "bottle",
		"wine glass": "wine",
		"cup":        "cup",
	}
}

// NewNormalizer 創建標準化器；labelMap 為 nil 時使用內建表
func NewNormalizer(labelMap map[string]string) *Normalizer {
	if labelMap == nil {
		labelMap = DefaultLabelMap()
	}
	return &Normalizer{labelMap: labelMap}
}

// NewNormalizerFromFile 從 JSON 檔案載入對應表；path 為空時使用內建表
func NewNormalizerFromFile(path string) (*Normalizer, error) {
	if path == "" {
		return NewNormalizer(nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label map: %w", err)
	}

	var labelMap map[string]string
	if err := common.ParseJSONBytes(data, &labelMap); err != nil {
		return nil, fmt.Errorf("failed to parse label map: %w", err)
	}

	common.LogInfo("已載入自訂標籤對應表",
		zap.String("路徑", path),
		zap.Int("標籤數量", len(labelMap)),
	)

	return NewNormalizer(labelMap), nil
}

// Normalize 將偵測結果序列轉換為去重後的食材名稱清單
// 不在對應表中的標籤直接捨棄；信心值與邊界框不參與輸出
// 空的輸入是正常的「未偵測到」狀態，回傳空清單
func (n *Normalizer) Normalize(detections []Detection) []string {
	seen := make(map[string]struct{}, len(detections))
	var names []string

	for _, det := range detections {
		label := strings.ToLower(strings.TrimSpace(det.Label))
		ingredient, ok := n.labelMap[label]
		if !ok {
			continue
		}

		ingredient = strings.ToLower(strings.TrimSpace(ingredient))
		if ingredient == "" {
			continue
		}
		if _, dup := seen[ingredient]; dup {
			continue
		}

		seen[ingredient] = struct{}{}
		names = append(names, ingredient)
	}

	return names
}
