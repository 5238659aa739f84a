package algo

import (
	"testing"

	"github.com/huangsam/mcpcensus/schema"
	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		total    int
		expected float64
	}{
		{"zero total", 0, 0, 0},
		{"count without total", 5, 0, 0},
		{"quarter", 50, 200, 25},
		{"third", 1, 3, 33.33},
		{"two thirds", 2, 3, 66.67},
		{"full", 7, 7, 100},
		{"half cent rounds away from zero", 1, 8, 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Percentage(tt.count, tt.total), 1e-9)
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{4}, 4},
		{"odd", []float64{1, 2, 3}, 2},
		{"even", []float64{1, 2, 3, 4}, 2.5},
		{"unsorted", []float64{9, 1, 5}, 5},
		{"not rounded", []float64{1, 2.005}, 1.5025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Median(tt.values), 1e-9)
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 0.0, Average([]float64{}))
	assert.InDelta(t, 2.33, Average([]float64{1, 2, 4}), 1e-9)
	assert.InDelta(t, 10.0, Average([]float64{10}), 1e-9)
	assert.InDelta(t, 0.67, Average([]float64{0, 1, 1}), 1e-9)
}

func TestPresentInts(t *testing.T) {
	one, five := 1, 5
	records := []schema.VcsInfoRecord{{Stars: &one}, {}, {Stars: &five}}
	values := PresentInts(records, func(r *schema.VcsInfoRecord) *int { return r.Stars })
	assert.Equal(t, []float64{1, 5}, values)
}

func BenchmarkMedian(b *testing.B) {
	values := []float64{9, 3, 7, 1, 5, 8, 2, 6, 4, 10}
	for b.Loop() {
		Median(values)
	}
}
