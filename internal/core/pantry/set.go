package pantry

import (
	"encoding/json"
	"strings"
)

// Set 標準化的食材集合
// 項目一律小寫並去除前後空白，不允許重複（不分大小寫）與空字串
// 保留加入順序，方便前端穩定顯示
type Set struct {
	names []string
	index map[string]int
}

// NewSet 創建食材集合，可同時加入初始項目
func NewSet(names ...string) *Set {
	s := &Set{index: make(map[string]int)}
	s.Add(names...)
	return s
}

// Canonical 將食材名稱轉換為標準形式
func Canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Add 加入食材，回傳實際新增的數量
// 重複項目與空字串直接忽略，不視為錯誤
func (s *Set) Add(names ...string) int {
	if s.index == nil {
		s.index = make(map[string]int)
	}

	added := 0
	for _, name := range names {
		canonical := Canonical(name)
		if canonical == "" {
			continue
		}
		if _, exists := s.index[canonical]; exists {
			continue
		}
		s.index[canonical] = len(s.names)
		s.names = append(s.names, canonical)
		added++
	}
	return added
}

// Remove 移除單一食材，回傳是否有移除
func (s *Set) Remove(name string) bool {
	canonical := Canonical(name)
	pos, exists := s.index[canonical]
	if !exists {
		return false
	}
	return s.RemoveAt(pos)
}

// RemoveAt 依位置移除食材
func (s *Set) RemoveAt(pos int) bool {
	if pos < 0 || pos >= len(s.names) {
		return false
	}

	delete(s.index, s.names[pos])
	s.names = append(s.names[:pos], s.names[pos+1:]...)

	// 重建後續項目的索引
	for i := pos; i < len(s.names); i++ {
		s.index[s.names[i]] = i
	}
	return true
}

// Clear 清空集合
func (s *Set) Clear() {
	s.names = nil
	s.index = make(map[string]int)
}

// Contains 檢查食材是否已持有（不分大小寫）
func (s *Set) Contains(name string) bool {
	_, exists := s.index[Canonical(name)]
	return exists
}

// Items 回傳目前的食材清單（複本，依加入順序）
func (s *Set) Items() []string {
	items := make([]string, len(s.names))
	copy(items, s.names)
	return items
}

// Len 回傳集合大小
func (s *Set) Len() int {
	return len(s.names)
}

// MarshalJSON 序列化為 JSON 陣列
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// UnmarshalJSON 從 JSON 陣列還原集合
func (s *Set) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	s.Clear()
	s.Add(names...)
	return nil
}
