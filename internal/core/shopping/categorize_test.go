package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizePartitionsItems(t *testing.T) {
	groups := Categorize([]string{"chicken broth", "skim milk", "kiwi"})

	// 結果依分區宣告順序輸出：Dairy 在 Meat 之前
	require.Len(t, groups, 3)
	assert.Equal(t, CategoryDairy, groups[0].Category)
	assert.Equal(t, []string{"skim milk"}, groups[0].Items)
	assert.Equal(t, CategoryMeat, groups[1].Category)
	assert.Equal(t, []string{"chicken broth"}, groups[1].Items)
	assert.Equal(t, CategoryOther, groups[2].Category)
	assert.Equal(t, []string{"kiwi"}, groups[2].Items)
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	// "tomato sauce" 先命中 Vegetables 的 "tomato"，不會落入 Pantry
	groups := Categorize([]string{"tomato sauce"})

	require.Len(t, groups, 1)
	assert.Equal(t, CategoryVegetables, groups[0].Category)
}

func TestCategorizeSubstringMatch(t *testing.T) {
	groups := Categorize([]string{"Whole Milk", "olive oil", "APPLE JUICE"})

	require.Len(t, groups, 3)
	assert.Equal(t, CategoryFruits, groups[0].Category)
	assert.Equal(t, []string{"APPLE JUICE"}, groups[0].Items)
	assert.Equal(t, CategoryDairy, groups[1].Category)
	assert.Equal(t, []string{"Whole Milk"}, groups[1].Items)
	assert.Equal(t, CategoryPantry, groups[2].Category)
	assert.Equal(t, []string{"olive oil"}, groups[2].Items)
}

func TestCategorizeOmitsEmptyCategories(t *testing.T) {
	groups := Categorize([]string{"tofu"})

	require.Len(t, groups, 1)
	assert.Equal(t, CategoryOther, groups[0].Category)
}

func TestCategorizeEmptyInput(t *testing.T) {
	assert.Empty(t, Categorize(nil))
	assert.Empty(t, Categorize([]string{}))
}

func TestCategorizePreservesInputOrderWithinCategory(t *testing.T) {
	groups := Categorize([]string{"carrot", "onion", "tomato"})

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"carrot", "onion", "tomato"}, groups[0].Items)
}

func TestCategorizeIdempotent(t *testing.T) {
	items := []string{"chicken broth", "banana", "skim milk", "rice", "kiwi", "garlic"}
	first := Categorize(items)

	// 把第一次的結果依序攤平再分類，必得到相同的劃分
	var flattened []string
	for _, group := range first {
		flattened = append(flattened, group.Items...)
	}
	second := Categorize(flattened)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Category, second[i].Category)
		assert.ElementsMatch(t, first[i].Items, second[i].Items)
	}
}
