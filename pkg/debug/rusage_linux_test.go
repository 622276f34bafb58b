//go:build linux

package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeakRSS(t *testing.T) {
	assert.Positive(t, PeakRSS())
}
