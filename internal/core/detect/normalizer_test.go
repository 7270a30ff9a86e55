package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMapsLabelsToIngredients(t *testing.T) {
	n := NewNormalizer(nil)

	names := n.Normalize([]Detection{
		{Label: "hot dog", Confidence: 0.91, BoundingBox: []float64{10, 10, 80, 40}},
		{Label: "wine glass", Confidence: 0.77},
		{Label: "apple", Confidence: 0.85},
	})

	assert.Equal(t, []string{"sausage", "wine", "apple"}, names)
}

func TestNormalizeDropsUnmappedLabels(t *testing.T) {
	n := NewNormalizer(nil)

	// person 與 laptop 不是食材，直接捨棄
	names := n.Normalize([]Detection{
		{Label: "person", Confidence: 0.99},
		{Label: "banana", Confidence: 0.8},
		{Label: "laptop", Confidence: 0.95},
	})

	assert.Equal(t, []string{"banana"}, names)
}

func TestNormalizeDeduplicates(t *testing.T) {
	n := NewNormalizer(nil)

	names := n.Normalize([]Detection{
		{Label: "apple", Confidence: 0.9},
		{Label: "apple", Confidence: 0.6},
		{Label: "Apple", Confidence: 0.7},
	})

	assert.Equal(t, []string{"apple"}, names)
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := NewNormalizer(nil)

	assert.Empty(t, n.Normalize(nil))
	assert.Empty(t, n.Normalize([]Detection{}))
}

func TestNormalizeTrimsAndLowercasesLabels(t *testing.T) {
	n := NewNormalizer(nil)

	names := n.Normalize([]Detection{
		{Label: "  Hot Dog  ", Confidence: 0.88},
	})

	assert.Equal(t, []string{"sausage"}, names)
}

func TestNormalizeWithCustomLabelMap(t *testing.T) {
	n := NewNormalizer(map[string]string{
		"bell pepper": "pepper",
	})

	names := n.Normalize([]Detection{
		{Label: "bell pepper", Confidence: 0.8},
		{Label: "apple", Confidence: 0.9}, // 自訂表取代內建表，apple 不再有對應
	})

	assert.Equal(t, []string{"pepper"}, names)
}
