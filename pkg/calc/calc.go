package calc

import (
	"fmt"
	"math"
	"strings"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

// Progress calculates the percentage for a given pair of numbers.
func Progress(current, total int) int {
	if total > 0 {
		return int(math.Round(float64(current) / float64(total) * 100))
	}
	return 0
}

// Bar renders a filled/empty progress bar of the given width with a trailing
// percentage, e.g. "███░░░░░░░ 30%".
func Bar(current, total, width int) string {
	if total <= 0 {
		return strings.Repeat(barEmpty, width) + " 0%"
	}

	ratio := math.Min(float64(current)/float64(total), 1.0)
	filled := int(float64(width) * ratio)

	return fmt.Sprintf("%s%s %d%%",
		strings.Repeat(barFilled, filled),
		strings.Repeat(barEmpty, width-filled),
		int(ratio*100))
}
