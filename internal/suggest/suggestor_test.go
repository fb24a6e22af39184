package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name  string
		colsA []string
		colsB []string
		want  map[string]string
	}{
		{
			name:  "substring containment after folding",
			colsA: []string{"Policy No"},
			colsB: []string{"PolicyNumber"},
			want:  map[string]string{"Policy No": "PolicyNumber"},
		},
		{
			name:  "first substring match in B order wins",
			colsA: []string{"Premium"},
			colsB: []string{"Gross Premium Amount", "Net Premium"},
			want:  map[string]string{"Premium": "Gross Premium Amount"},
		},
		{
			name:  "fuzzy fallback above threshold",
			colsA: []string{"Brokerage"},
			colsB: []string{"Brokerge"}, // typo, no containment
			want:  map[string]string{"Brokerage": "Brokerge"},
		},
		{
			name:  "below threshold stays unmapped",
			colsA: []string{"GST"},
			colsB: []string{"Policy Holder Name"},
			want:  map[string]string{"GST": ""},
		},
		{
			name:  "case insensitive",
			colsA: []string{"POLICY NUMBER"},
			colsB: []string{"policy number"},
			want:  map[string]string{"POLICY NUMBER": "policy number"},
		},
		{
			name:  "every A column gets an entry",
			colsA: []string{"Policy No", "Zzzz"},
			colsB: []string{"Policy Number"},
			want:  map[string]string{"Policy No": "Policy Number", "Zzzz": ""},
		},
		{
			name:  "empty inputs",
			colsA: []string{},
			colsB: []string{"Policy Number"},
			want:  map[string]string{},
		},
		{
			name:  "blank B columns never suggested",
			colsA: []string{"Policy No"},
			colsB: []string{"   ", "Policy Number"},
			want:  map[string]string{"Policy No": "Policy Number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.colsA, tt.colsB))
		})
	}
}

func TestSuggest_Deterministic(t *testing.T) {
	colsA := []string{"Policy No", "Premium", "Start Dt"}
	colsB := []string{"PolicyNumber", "Gross Premium", "Policy Start Date"}

	first := Suggest(colsA, colsB)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Suggest(colsA, colsB))
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("premium", "premium"))
	assert.Equal(t, 1.0, Similarity("", ""))
	// One edit over nine characters.
	assert.InDelta(t, 1.0-1.0/9.0, Similarity("brokerage", "brokerge"), 1e-9)
	assert.Less(t, Similarity("gst", "policyholdername"), SimilarityThreshold)
}
