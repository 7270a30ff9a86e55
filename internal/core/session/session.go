package session

import (
	"time"

	"cook-assistant/internal/core/pantry"
	"cook-assistant/internal/core/recipe"
)

// Session 單一使用者的會話狀態
// Pantry 為目前持有的食材集合；Selected 為已選定的食譜（唯讀資料）
// 所有變動都必須透過 Store.Update 進行，以保證單一擁有者語義
type Session struct {
	ID        string         `json:"id"`
	Pantry    *pantry.Set    `json:"pantry"`
	Selected  *recipe.Recipe `json:"selected_recipe,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// New 創建新的會話狀態
func New(id string) *Session {
	return &Session{
		ID:        id,
		Pantry:    pantry.NewSet(),
		UpdatedAt: time.Now(),
	}
}

// normalize 補齊反序列化後可能缺少的欄位
func (s *Session) normalize() {
	if s.Pantry == nil {
		s.Pantry = pantry.NewSet()
	}
}

// Clone 回傳會話狀態的複本，避免呼叫端繞過 Store 直接修改
func (s *Session) Clone() *Session {
	clone := &Session{
		ID:        s.ID,
		Pantry:    pantry.NewSet(s.Pantry.Items()...),
		UpdatedAt: s.UpdatedAt,
	}
	if s.Selected != nil {
		selected := *s.Selected
		clone.Selected = &selected
	}
	return clone
}
