package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "drops stop words and short tokens",
			text: "the budget and a plan to win",
			want: []string{"budget", "plan"},
		},
		{
			name: "lowercases",
			text: "Budget BUDGET Roadmap",
			want: []string{"budget", "roadmap"},
		},
		{
			name: "dedupes preserving first occurrence order",
			text: "revenue growth revenue targets growth",
			want: []string{"revenue", "growth", "targets"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "only stop words",
			text: "the and or but",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestOverlap(t *testing.T) {
	a := ToSet([]string{"budget", "plan", "revenue"})
	b := ToSet([]string{"revenue", "budget", "growth"})

	assert.Equal(t, 2, Overlap(a, b))
	assert.Equal(t, 2, Overlap(b, a))
	assert.Equal(t, 0, Overlap(a, ToSet(nil)))
	assert.Equal(t, 0, Overlap(map[string]bool{}, map[string]bool{}))
}

func TestExtractSet(t *testing.T) {
	set := ExtractSet("quarterly budget review")
	assert.True(t, set["quarterly"])
	assert.True(t, set["budget"])
	assert.True(t, set["review"])
	assert.Len(t, set, 3)
}
