package recipe

// 本地備援食譜表，API 無法使用時的最低保障
// 欄位形狀與 findByIngredients 回應一致
var fallbackRecipes = map[string][]Recipe{
	"apple": {
		{
			ID:                    1,
			Title:                 "Apple Salad",
			UsedIngredientCount:   1,
			MissedIngredientCount: 3,
			MissedIngredients: []IngredientRef{
				PlainIngredient("lettuce"),
				PlainIngredient("walnuts"),
				PlainIngredient("dressing"),
			},
		},
	},
	"tomato": {
		{
			ID:                    2,
			Title:                 "Tomato Pasta",
			UsedIngredientCount:   1,
			MissedIngredientCount: 2,
			MissedIngredients: []IngredientRef{
				PlainIngredient("pasta"),
				PlainIngredient("basil"),
			},
		},
	},
}

// FallbackSearch 從本地備援表組合食譜，最多回傳 limit 筆
func FallbackSearch(ingredients []string, limit int) []Recipe {
	var recipes []Recipe
	for _, ingredient := range ingredients {
		if matched, ok := fallbackRecipes[ingredient]; ok {
			recipes = append(recipes, matched...)
		}
	}
	if limit > 0 && len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes
}
