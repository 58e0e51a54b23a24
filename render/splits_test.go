package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		h, p int
		want []int
	}{
		{h: 7, p: 3, want: []int{0, 3, 5}},
		{h: 6, p: 3, want: []int{0, 2, 4}},
		{h: 600, p: 8, want: []int{0, 75, 150, 225, 300, 375, 450, 525}},
		{h: 10, p: 1, want: []int{0}},
		{h: 2, p: 4, want: []int{0, 1, 2, 2}},
		{h: 5, p: 0, want: []int{0}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ComputeSplits(tt.h, tt.p)); diff != "" {
			t.Errorf("ComputeSplits(%d, %d) mismatch (-want +got):\n%s", tt.h, tt.p, diff)
		}
	}
}

func TestComputeSplitsCoversRows(t *testing.T) {
	for h := 1; h <= 64; h++ {
		for p := 1; p <= 12; p++ {
			splits := ComputeSplits(h, p)
			assert.Len(t, splits, p)
			assert.Equal(t, 0, splits[0])

			minSize, maxSize := h, 0
			for i := range splits {
				size := bandEnd(splits, i, h) - splits[i]
				assert.GreaterOrEqual(t, size, 0)
				minSize = min(minSize, size)
				maxSize = max(maxSize, size)
			}
			assert.LessOrEqualf(t, maxSize-minSize, 1, "h=%d p=%d", h, p)
			assert.Equal(t, h, bandEnd(splits, len(splits)-1, h))
		}
	}
}
