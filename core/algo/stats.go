package algo

import (
	"math"
	"slices"
)

// Percentage returns count/total as a percentage rounded to two decimals.
// It returns 0 when total is 0.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}

// Median returns the middle value of values, or the mean of the two middle
// values for even lengths. The input is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Average returns the arithmetic mean of values rounded to two decimals.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return math.Round(sum/float64(len(values))*100) / 100
}

// PresentInts collects the non-nil values of a nullable integer column.
func PresentInts[T any](records []T, field func(*T) *int) []float64 {
	values := make([]float64, 0, len(records))
	for i := range records {
		if v := field(&records[i]); v != nil {
			values = append(values, float64(*v))
		}
	}
	return values
}
