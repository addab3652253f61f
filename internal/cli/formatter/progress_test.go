package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", StripANSI(RenderProgress(50, 10)))
	assert.Equal(t, "[░░░░░░░░░░]   0%", StripANSI(RenderProgress(-5, 10)))
	assert.Equal(t, "[██████████] 100%", StripANSI(RenderProgress(140, 10)))
}

func TestRenderLoad(t *testing.T) {
	assert.Equal(t, "[██████████] 100%", StripANSI(RenderLoad(100, true, 10)))
	assert.Equal(t, "[███░░░░░░░]  33%", StripANSI(RenderLoad(33, false, 10)))
}
