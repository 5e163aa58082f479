// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/gogpu/upscaler/device"
)

// Barrier is the layout an image must be in for one kind of access,
// together with the pipeline stages and access types that perform it.
type Barrier struct {
	Layout vk.ImageLayout
	Stage  vk.PipelineStageFlags
	Access vk.AccessFlags
}

// anyAccess is the source side for images whose prior use is unknown.
var anyAccess = Barrier{
	Stage:  vk.PipelineStageFlags(vk.PipelineStageAllCommandsBit),
	Access: vk.AccessFlags(vk.AccessMemoryReadBit | vk.AccessMemoryWriteBit),
}

// BarrierFor returns the barrier target for access. Depth images are read
// in the depth read-only layout.
func BarrierFor(access device.Access, depth bool) Barrier {
	switch access {
	case device.AccessUnorderedAccess:
		return Barrier{
			Layout: vk.ImageLayoutGeneral,
			Stage:  vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit),
			Access: vk.AccessFlags(vk.AccessShaderReadBit | vk.AccessShaderWriteBit),
		}
	case device.AccessCopySrc:
		return Barrier{
			Layout: vk.ImageLayoutTransferSrcOptimal,
			Stage:  vk.PipelineStageFlags(vk.PipelineStageTransferBit),
			Access: vk.AccessFlags(vk.AccessTransferReadBit),
		}
	case device.AccessCopyDst:
		return Barrier{
			Layout: vk.ImageLayoutTransferDstOptimal,
			Stage:  vk.PipelineStageFlags(vk.PipelineStageTransferBit),
			Access: vk.AccessFlags(vk.AccessTransferWriteBit),
		}
	case device.AccessGenericRead:
		return Barrier{
			Layout: vk.ImageLayoutGeneral,
			Stage:  vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit | vk.PipelineStageTransferBit),
			Access: vk.AccessFlags(vk.AccessShaderReadBit | vk.AccessTransferReadBit),
		}
	case device.AccessPixelRead:
		return Barrier{
			Layout: readLayout(depth),
			Stage:  vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
			Access: vk.AccessFlags(vk.AccessShaderReadBit),
		}
	case device.AccessRenderTarget:
		return Barrier{
			Layout: vk.ImageLayoutColorAttachmentOptimal,
			Stage:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
			Access: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
		}
	default:
		return Barrier{
			Layout: readLayout(depth),
			Stage:  vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit),
			Access: vk.AccessFlags(vk.AccessShaderReadBit),
		}
	}
}

func readLayout(depth bool) vk.ImageLayout {
	if depth {
		return vk.ImageLayoutDepthStencilReadOnlyOptimal
	}
	return vk.ImageLayoutShaderReadOnlyOptimal
}

// transition is one image moved away from the layout the host tracks for
// the lifetime of one command buffer.
type transition struct {
	image  vk.Image
	rng    vk.ImageSubresourceRange
	before vk.ImageLayout
	after  Barrier

	// recorded is false while no command buffer was recording at resolve
	// time; the barrier is then recorded at the next acquire.
	recorded bool
}

func imageBarrier(t *transition, from, to Barrier) vk.ImageMemoryBarrier {
	return vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       from.Access,
		DstAccessMask:       to.Access,
		OldLayout:           from.Layout,
		NewLayout:           to.Layout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               t.image,
		SubresourceRange:    t.rng,
	}
}

// host is the layout the host tracks, with unknown prior use.
func (t *transition) host() Barrier {
	return Barrier{Layout: t.before, Stage: anyAccess.Stage, Access: anyAccess.Access}
}

// restorable reports whether the image can be moved back to before.
// Undefined and preinitialized are not valid barrier targets; the host
// treats such images as having no contents anyway.
func (t *transition) restorable() bool {
	return t.before != vk.ImageLayoutUndefined && t.before != vk.ImageLayoutPreinitialized
}
