package recipe

import (
	"encoding/json"
	"fmt"
)

// IngredientRef 食譜中的食材參照
// 外部 API 的食材清單有兩種形狀：純字串（備援資料）或帶 name 欄位的物件
// （Spoonacular 回應）；兩種都要能解析，不能因形狀不同而出錯
type IngredientRef struct {
	name   string
	object bool // 原始 JSON 是否為物件形式
}

// PlainIngredient 創建字串形式的食材參照
func PlainIngredient(name string) IngredientRef {
	return IngredientRef{name: name}
}

// NamedIngredient 創建物件形式的食材參照
func NamedIngredient(name string) IngredientRef {
	return IngredientRef{name: name, object: true}
}

// Name 取出食材名稱，兩種形狀共用的唯一取值入口
func (r IngredientRef) Name() string {
	return r.name
}

// UnmarshalJSON 接受字串或 {"name": ...} 物件
func (r *IngredientRef) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		r.name = plain
		r.object = false
		return nil
	}

	var named struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &named); err != nil {
		return fmt.Errorf("ingredient must be a string or an object with a name field: %w", err)
	}
	r.name = named.Name
	r.object = true
	return nil
}

// MarshalJSON 依原始形狀輸出
func (r IngredientRef) MarshalJSON() ([]byte, error) {
	if r.object {
		return json.Marshal(struct {
			Name string `json:"name"`
		}{Name: r.name})
	}
	return json.Marshal(r.name)
}

// Recipe 食譜記錄，欄位形狀對齊 Spoonacular findByIngredients / information 回應
// 一旦被選定即視為唯讀資料
type Recipe struct {
	ID                    int64           `json:"id,omitempty"`
	Title                 string          `json:"title"`
	Image                 string          `json:"image,omitempty"`
	UsedIngredientCount   int             `json:"usedIngredientCount,omitempty"`
	MissedIngredientCount int             `json:"missedIngredientCount,omitempty"`
	// 兩個食材清單不可加 omitempty：空清單與缺少欄位的語義不同，
	// 序列化後必須原樣還原
	MissedIngredients     []IngredientRef `json:"missedIngredients"`
	ExtendedIngredients   []IngredientRef `json:"extendedIngredients"`
	ReadyInMinutes        int             `json:"readyInMinutes,omitempty"`
	Servings              int             `json:"servings,omitempty"`
	Summary               string          `json:"summary,omitempty"`
}
