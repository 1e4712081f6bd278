// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/geom"
)

// vertexStride is the byte size of one vertex in GPU storage: two i32
// lanes, same layout as geom.Point2D.
const vertexStride = 8

// translateParams is the uniform block of the translate kernel.
// Field order and sizes must match struct Params in shaders/translate.wgsl.
type translateParams struct {
	Dx    int32
	Dy    int32
	Count uint32
	_     uint32 // pad to 16 bytes
}

// buffer is a GPU-resident vertex mirror: a storage buffer for the
// vertices plus a small uniform buffer and bind group reused by every
// dispatch against it.
type buffer struct {
	dev   *Device
	label string
	n     int

	storage hal.Buffer
	params  hal.Buffer
	bind    hal.BindGroup

	released bool
}

var _ geom.DeviceBuffer = (*buffer)(nil)

// newBuffer allocates the storage, uniform, and bind group for n
// vertices. Caller holds d.mu.
func (d *Device) newBuffer(label string, n int) (*buffer, error) {
	size := uint64(n) * vertexStride

	storage, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label, Size: size,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create storage buffer: %w", err)
	}

	paramSize := uint64(unsafe.Sizeof(translateParams{}))
	params, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_params", Size: paramSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		d.device.DestroyBuffer(storage)
		return nil, fmt.Errorf("wgpu: create params buffer: %w", err)
	}

	bind, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: label + "_bind", Layout: d.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: params.NativeHandle(), Offset: 0, Size: paramSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: storage.NativeHandle(), Offset: 0, Size: size}},
		},
	})
	if err != nil {
		d.device.DestroyBuffer(params)
		d.device.DestroyBuffer(storage)
		return nil, fmt.Errorf("wgpu: create bind group: %w", err)
	}

	slogger().Debug("wgpu: buffer created", "label", label, "vertices", n, "bytes", size)
	return &buffer{dev: d, label: label, n: n, storage: storage, params: params, bind: bind}, nil
}

// Len returns the number of vertices the mirror holds.
func (b *buffer) Len() int { return b.n }

// Upload copies vertices from host memory into the storage buffer.
func (b *buffer) Upload(src []geom.Point2D) error {
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	if err := b.usable(); err != nil {
		return err
	}
	if len(src) != b.n {
		return fmt.Errorf("wgpu: upload size %d does not match buffer size %d", len(src), b.n)
	}
	b.dev.queue.WriteBuffer(b.storage, 0, packVertices(src))
	return nil
}

// Download copies vertices from the storage buffer into host memory,
// through a fence-synchronized staging buffer.
func (b *buffer) Download(dst []geom.Point2D) error {
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	if err := b.usable(); err != nil {
		return err
	}
	if len(dst) != b.n {
		return fmt.Errorf("wgpu: download size %d does not match buffer size %d", len(dst), b.n)
	}

	size := uint64(b.n) * vertexStride
	staging, err := b.dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: b.label + "_staging", Size: size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer b.dev.device.DestroyBuffer(staging)

	encoder, err := b.dev.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "geom_download_encoder"})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("geom_download"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	encoder.CopyBufferToBuffer(b.storage, staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: size},
	})
	if err := b.dev.submitAndWait(encoder); err != nil {
		return err
	}

	raw := make([]byte, size)
	if err := b.dev.queue.ReadBuffer(staging, 0, raw); err != nil {
		return fmt.Errorf("wgpu: readback: %w", err)
	}
	unpackVertices(raw, dst)
	return nil
}

// Translate dispatches the translate kernel over the storage buffer and
// blocks until the GPU signals completion.
func (b *buffer) Translate(dx, dy geom.Coordinate) error {
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	if err := b.usable(); err != nil {
		return err
	}

	params := translateParams{
		Dx:    int32(dx),
		Dy:    int32(dy),
		Count: uint32(b.n), //nolint:gosec // buffer sizes fit uint32
	}
	b.dev.queue.WriteBuffer(b.params, 0,
		structToBytes(unsafe.Pointer(&params), unsafe.Sizeof(params))) //nolint:gosec // safe struct serialization

	encoder, err := b.dev.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "geom_translate_encoder"})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("geom_translate"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "geom_translate_pass"})
	pass.SetPipeline(b.dev.pipeline)
	pass.SetBindGroup(0, b.bind, nil)
	groups := (uint32(b.n) + translateWGSize - 1) / translateWGSize //nolint:gosec // buffer sizes fit uint32
	pass.Dispatch(groups, 1, 1)
	pass.End()

	if err := b.dev.submitAndWait(encoder); err != nil {
		return err
	}
	slogger().Debug("wgpu: translate dispatched", "label", b.label, "vertices", b.n, "groups", groups)
	return nil
}

// Release frees the GPU resources behind the mirror. Safe to call more
// than once.
func (b *buffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.dev.mu.Lock()
	defer b.dev.mu.Unlock()
	if b.dev.device == nil {
		return
	}
	if b.bind != nil {
		b.dev.device.DestroyBindGroup(b.bind)
		b.bind = nil
	}
	if b.params != nil {
		b.dev.device.DestroyBuffer(b.params)
		b.params = nil
	}
	if b.storage != nil {
		b.dev.device.DestroyBuffer(b.storage)
		b.storage = nil
	}
}

// usable checks the buffer and its device are still good for work.
// Caller holds dev.mu.
func (b *buffer) usable() error {
	if b.released {
		return fmt.Errorf("wgpu: use of released buffer %q", b.label)
	}
	if !b.dev.gpuReady {
		return geom.ErrFallbackToHost
	}
	return nil
}

// submitAndWait finishes encoding, submits the command buffer with a
// fence, and blocks until the GPU signals it. Caller holds d.mu.
func (d *Device) submitAndWait(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)
	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

// packVertices serializes vertices into little-endian i32 pairs for GPU
// upload.
func packVertices(src []geom.Point2D) []byte {
	out := make([]byte, len(src)*vertexStride)
	for i, v := range src {
		binary.LittleEndian.PutUint32(out[i*vertexStride:], uint32(v.X))   //nolint:gosec // two's complement round-trip
		binary.LittleEndian.PutUint32(out[i*vertexStride+4:], uint32(v.Y)) //nolint:gosec // two's complement round-trip
	}
	return out
}

// unpackVertices deserializes little-endian i32 pairs from GPU readback.
func unpackVertices(raw []byte, dst []geom.Point2D) {
	for i := range dst {
		x := int32(binary.LittleEndian.Uint32(raw[i*vertexStride:]))   //nolint:gosec // two's complement round-trip
		y := int32(binary.LittleEndian.Uint32(raw[i*vertexStride+4:])) //nolint:gosec // two's complement round-trip
		dst[i] = geom.Point2D{X: geom.Coordinate(x), Y: geom.Coordinate(y)}
	}
}

func structToBytes(ptr unsafe.Pointer, size uintptr) []byte {
	return unsafe.Slice((*byte)(ptr), size) //nolint:gosec // safe struct serialization
}
