package pantry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAddNormalizesAndDeduplicates(t *testing.T) {
	s := NewSet()

	added := s.Add("Tomato", " onion ", "tomato", "")
	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"tomato", "onion"}, s.Items())

	// 重複加入不改變集合
	assert.Equal(t, 0, s.Add("TOMATO"))
	assert.Equal(t, 2, s.Len())
}

func TestSetContains(t *testing.T) {
	s := NewSet("tomato")

	assert.True(t, s.Contains("tomato"))
	assert.True(t, s.Contains("Tomato "))
	assert.False(t, s.Contains("onion"))
}

func TestSetRemove(t *testing.T) {
	s := NewSet("tomato", "onion", "garlic")

	assert.True(t, s.Remove("Onion"))
	assert.Equal(t, []string{"tomato", "garlic"}, s.Items())

	assert.False(t, s.Remove("onion"))

	// 移除後索引仍然正確
	assert.True(t, s.Remove("garlic"))
	assert.Equal(t, []string{"tomato"}, s.Items())
}

func TestSetRemoveAt(t *testing.T) {
	s := NewSet("tomato", "onion", "garlic")

	assert.True(t, s.RemoveAt(0))
	assert.Equal(t, []string{"onion", "garlic"}, s.Items())

	assert.False(t, s.RemoveAt(-1))
	assert.False(t, s.RemoveAt(2))
}

func TestSetClear(t *testing.T) {
	s := NewSet("tomato", "onion")

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Items())
	assert.Empty(t, s.Items())

	// 清空後可以繼續使用
	s.Add("garlic")
	assert.Equal(t, []string{"garlic"}, s.Items())
}

func TestSetItemsReturnsCopy(t *testing.T) {
	s := NewSet("tomato", "onion")

	items := s.Items()
	items[0] = "hacked"

	assert.Equal(t, []string{"tomato", "onion"}, s.Items())
}

func TestSetJSONRoundTrip(t *testing.T) {
	s := NewSet("tomato", "onion")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["tomato", "onion"]`, string(data))

	var restored Set
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, []string{"tomato", "onion"}, restored.Items())
}
