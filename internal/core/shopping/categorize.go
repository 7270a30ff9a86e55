package shopping

import (
	"strings"
)

// Category 購物分區標籤
type Category string

const (
	CategoryVegetables Category = "Vegetables"
	CategoryFruits     Category = "Fruits"
	CategoryDairy      Category = "Dairy"
	CategoryMeat       Category = "Meat"
	CategoryPantry     Category = "Pantry"
	CategoryOther      Category = "Other"
)

// categoryOrder 固定的分區順序，結果依此順序輸出
var categoryOrder = []Category{
	CategoryVegetables,
	CategoryFruits,
	CategoryDairy,
	CategoryMeat,
	CategoryPantry,
	CategoryOther,
}

// categoryKeywords 各分區的關鍵字表
// 涵蓋有限，視為可調整的設定資料；比對不到的項目一律落入 Other
var categoryKeywords = map[Category][]string{
	CategoryVegetables: {"tomato", "lettuce", "onion", "garlic", "potato", "carrot"},
	CategoryFruits:     {"apple", "banana", "orange", "berry"},
	CategoryDairy:      {"milk", "cheese", "butter", "yogurt"},
	CategoryMeat:       {"chicken", "beef", "fish", "pork"},
	CategoryPantry:     {"flour", "sugar", "oil", "rice", "pasta"},
}

// Group 單一分區與其項目
type Group struct {
	Category Category `json:"category"`
	Items    []string `json:"items"`
}

// Categorize 將購物清單項目劃分到固定的購物分區
//
// 比對規則：項目轉小寫後，依分區宣告順序測試關鍵字的子字串包含，
// 第一個命中的分區勝出，項目不會同時出現在兩個分區
// （"chicken broth" 命中 Meat 的 "chicken"，不會落入 Other）
// 沒有任何項目的分區整個省略；各分區內保留輸入順序
// 此函式必為全域函式：任何輸入都不會失敗
func Categorize(items []string) []Group {
	buckets := make(map[Category][]string, len(categoryOrder))

	for _, item := range items {
		category := categoryFor(item)
		buckets[category] = append(buckets[category], item)
	}

	groups := make([]Group, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		if matched := buckets[category]; len(matched) > 0 {
			groups = append(groups, Group{Category: category, Items: matched})
		}
	}
	return groups
}

// categoryFor 回傳單一項目的分區
func categoryFor(item string) Category {
	lower := strings.ToLower(item)
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}
	return CategoryOther
}
