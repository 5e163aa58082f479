// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effect

// basePhaseCount is the number of jitter phases at native resolution.
const basePhaseCount = 8

// JitterPhaseCount returns the length of the jitter sequence for upscaling
// renderWidth to displayWidth. It grows with the square of the scale
// factor and is truncated, not rounded.
func JitterPhaseCount(renderWidth, displayWidth int32) int32 {
	if renderWidth <= 0 || displayWidth <= 0 {
		return 0
	}
	ratio := float32(displayWidth) / float32(renderWidth)
	return int32(basePhaseCount * ratio * ratio)
}

// JitterOffset returns the sub-pixel projection jitter for frame index,
// in pixels in [-0.5, 0.5). It is zero when either width is not positive.
func JitterOffset(index, renderWidth, displayWidth int32) (x, y float32) {
	phases := JitterPhaseCount(renderWidth, displayWidth)
	if phases <= 0 {
		return 0, 0
	}
	i := index%phases + 1
	return halton(i, 2) - 0.5, halton(i, 3) - 0.5
}

// halton returns element index of the van der Corput sequence in base.
func halton(index, base int32) float32 {
	f := float32(1)
	var r float32
	for index > 0 {
		f /= float32(base)
		r += f * float32(index%base)
		index /= base
	}
	return r
}
