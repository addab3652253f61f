package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders task progress like [████░░░░]  45%. pct is 0-100.
// Low progress is red, high progress green.
func RenderProgress(pct float64, width int) string {
	frac := clampFrac(pct / 100)
	style := StyleGreen
	if frac < 0.33 {
		style = StyleRed
	} else if frac < 0.66 {
		style = StyleYellow
	}
	return bar(frac, width, style.Render) + fmt.Sprintf(" %3.0f%%", frac*100)
}

// RenderLoad renders resource utilization with the scale inverted: a full
// bar is yellow and an over-allocated one red.
func RenderLoad(utilization int, overallocated bool, width int) string {
	frac := clampFrac(float64(utilization) / 100)
	style := StyleGreen
	switch {
	case overallocated:
		style = StyleRed
	case frac >= 0.9:
		style = StyleYellow
	}
	return bar(frac, width, style.Render) + fmt.Sprintf(" %3d%%", utilization)
}

func bar(frac float64, width int, render func(...string) string) string {
	if width < 2 {
		width = 2
	}
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + render(strings.Repeat(filledBlock, filled)+strings.Repeat(emptyBlock, width-filled)) + "]"
}

func clampFrac(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
