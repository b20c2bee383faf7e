package grid

import "github.com/dshills/consolewind/internal/renderer/core"

// SizePolicy decides the allocated dimensions of a buffer from the
// requested ones.
type SizePolicy struct {
	clamp     bool
	threshold int
	maxWidth  int
	maxHeight int
}

// ExactSize allocates exactly the requested dimensions.
func ExactSize() SizePolicy {
	return SizePolicy{}
}

// ClampedSize allocates the requested dimensions while their area is at most
// threshold, and maxWidth x maxHeight otherwise.
func ClampedSize(threshold, maxWidth, maxHeight int) SizePolicy {
	return SizePolicy{
		clamp:     true,
		threshold: threshold,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
	}
}

// DefaultBackPolicy returns the clamped policy with the default limits.
func DefaultBackPolicy() SizePolicy {
	return ClampedSize(core.DefaultAdjustmentThreshold, core.DefaultMaxBackWidth, core.DefaultMaxBackHeight)
}

// IsClamped returns true for policies created by ClampedSize.
func (p SizePolicy) IsClamped() bool {
	return p.clamp
}

// Threshold returns the area above which the policy clamps.
func (p SizePolicy) Threshold() int {
	return p.threshold
}

// Limits returns the clamped dimensions.
func (p SizePolicy) Limits() core.Size {
	return core.NewSize(p.maxWidth, p.maxHeight)
}

// Resolve returns the dimensions to allocate for a requested size.
func (p SizePolicy) Resolve(width, height int) (int, int) {
	if !p.clamp || width*height <= p.threshold {
		return width, height
	}
	return p.maxWidth, p.maxHeight
}
