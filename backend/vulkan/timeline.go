// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"

	"github.com/gogpu/upscaler/device"
	"github.com/gogpu/upscaler/internal/gpusync"
)

type inflight struct {
	token device.Token
	fence vk.Fence
}

// fenceTimeline numbers submissions on one queue and derives the completed
// token from their binary fences. Submissions on a queue complete in
// order, so only the oldest in-flight fence needs polling.
type fenceTimeline struct {
	cmds Commands
	dev  vk.Device

	last      device.Token
	completed device.Token
	inflight  []inflight
}

func newFenceTimeline(cmds Commands, dev vk.Device) *fenceTimeline {
	return &fenceTimeline{cmds: cmds, dev: dev}
}

// Signal records that fence will be signaled by the submission just made
// and returns its token.
func (t *fenceTimeline) Signal(fence vk.Fence) device.Token {
	t.last++
	t.inflight = append(t.inflight, inflight{token: t.last, fence: fence})
	return t.last
}

// Last returns the most recent token.
func (t *fenceTimeline) Last() device.Token { return t.last }

// CompletedValue polls the in-flight fences oldest first.
func (t *fenceTimeline) CompletedValue() device.Token {
	for len(t.inflight) > 0 {
		head := t.inflight[0]
		done, err := t.cmds.FenceSignaled(t.dev, head.fence)
		if err != nil {
			device.Logger().Error("vkGetFenceStatus", "api", "Vulkan", "token", uint64(head.token), "err", err)
			break
		}
		if !done {
			break
		}
		t.retire(1)
	}
	return t.completed
}

// BlockUntil waits on every in-flight fence up to token.
func (t *fenceTimeline) BlockUntil(token device.Token) error {
	if token.Reached(t.CompletedValue()) {
		return nil
	}

	n := 0
	for n < len(t.inflight) && t.inflight[n].token <= token {
		n++
	}
	if n == 0 {
		// Nothing that will ever signal token is in flight.
		return fmt.Errorf("%w: token %d was never submitted", ErrFenceWait, token)
	}

	fences := make([]vk.Fence, n)
	for i := range n {
		fences[i] = t.inflight[i].fence
	}
	if err := t.cmds.WaitForFences(t.dev, fences); err != nil {
		return fmt.Errorf("%w: %v", ErrFenceWait, err)
	}
	t.retire(n)
	return nil
}

func (t *fenceTimeline) retire(n int) {
	t.completed = t.inflight[n-1].token
	t.inflight = t.inflight[n:]
}

var _ gpusync.Primitive = (*fenceTimeline)(nil)
