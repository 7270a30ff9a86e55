package recipe

import (
	"strings"
)

// Availability 回報某食材是否已持有；由 pantry.Set 實作
type Availability interface {
	Contains(name string) bool
}

// MissingIngredients 計算食譜中使用者尚缺少的食材
//
// 解析順序：
//  1. 資料來源已提供 missedIngredients 時直接採信，依來源順序輸出
//  2. 否則以 extendedIngredients 扣除已持有食材，比對不分大小寫
//  3. 兩個欄位都不存在時回傳空清單，代表「無資料」而非「不缺食材」
//
// 輸出保留來源的原始大小寫，只有比對時做正規化
func MissingIngredients(r *Recipe, available Availability) []string {
	if r == nil {
		return []string{}
	}

	if r.MissedIngredients != nil {
		missing := make([]string, 0, len(r.MissedIngredients))
		for _, ref := range r.MissedIngredients {
			missing = append(missing, ref.Name())
		}
		return missing
	}

	if r.ExtendedIngredients != nil {
		missing := make([]string, 0, len(r.ExtendedIngredients))
		for _, ref := range r.ExtendedIngredients {
			name := ref.Name()
			if available != nil && available.Contains(strings.ToLower(strings.TrimSpace(name))) {
				continue
			}
			missing = append(missing, name)
		}
		return missing
	}

	return []string{}
}
