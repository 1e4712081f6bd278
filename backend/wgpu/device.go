// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/geom"
	"github.com/gogpu/geom/backend"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func init() {
	backend.Register(backend.BackendWGPU, func() geom.Device {
		// Decline when no HAL backend is compiled in; selection then
		// falls through to the soft device.
		if _, ok := hal.GetBackend(gputypes.BackendVulkan); !ok {
			return nil
		}
		return New()
	})
}

const (
	// translateWGSize is the workgroup size of the translate kernel.
	// Must match @workgroup_size in shaders/translate.wgsl.
	translateWGSize = 256

	// fenceTimeout bounds how long a dispatch may keep the host waiting.
	fenceTimeout = 5 * time.Second
)

// Device runs vertex kernels on a GPU through wgpu/hal compute pipelines.
// It implements the geom.Device interface.
//
// One compute pipeline is built at Init and shared by every buffer; each
// dispatch binds the buffer's own storage and parameter buffers to it.
// Device is safe for concurrent use, but dispatches serialize on the
// device mutex.
type Device struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// Translate kernel pipeline, shared by all buffers.
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	gpuReady       bool
	externalDevice bool // true when using a shared device (don't destroy on Close)
}

var _ geom.Device = (*Device)(nil)

// New creates an uninitialized GPU device. Init opens the adapter and
// builds the pipeline.
func New() *Device {
	return &Device{}
}

// Name returns "wgpu".
func (d *Device) Name() string { return backend.BackendWGPU }

// Init opens a GPU adapter and builds the translate pipeline. Unlike the
// soft device it can fail: no Vulkan, no adapters, or shader compilation
// trouble all surface here, and the caller (usually backend.InitDefault)
// moves on to the next backend.
//
// On an adopted device (see Adopt) the adapter is already open and Init
// only builds the pipeline.
func (d *Device) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gpuReady {
		return nil
	}
	if d.externalDevice && d.device != nil {
		if err := d.createPipelines(); err != nil {
			return fmt.Errorf("wgpu: create pipelines with shared device: %w", err)
		}
		d.gpuReady = true
		slogger().Info("wgpu: initialized on shared GPU device")
		return nil
	}
	if err := d.initGPU(); err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}
	return nil
}

// Close releases the pipeline and, for devices opened by Init, the
// underlying adapter. Adopted devices keep their shared resources; only
// this package's pipeline objects go away.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyPipelines()
	if !d.externalDevice {
		if d.device != nil {
			d.device.Destroy()
			d.device = nil
		}
		if d.instance != nil {
			d.instance.Destroy()
			d.instance = nil
		}
	} else {
		// Don't destroy shared resources — we don't own them
		d.device = nil
		d.instance = nil
	}
	d.queue = nil
	d.gpuReady = false
	d.externalDevice = false
}

// SetLogger routes this package's log output through the given logger.
// geom.SetLogger calls this automatically when the device is registered
// as the default.
func (d *Device) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// SetDeviceProvider switches the device to use a shared GPU device from
// an external provider (e.g., gogpu). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func (d *Device) SetDeviceProvider(provider any) error {
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Destroy own resources if we created them
	d.destroyPipelines()
	if !d.externalDevice && d.device != nil {
		d.device.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}

	// Use provided resources
	d.device = device
	d.queue = queue
	d.externalDevice = true

	// Recreate pipelines with shared device
	if err := d.createPipelines(); err != nil {
		d.gpuReady = false
		return fmt.Errorf("wgpu: create pipelines with shared device: %w", err)
	}
	d.gpuReady = true
	slogger().Info("wgpu: switched to shared GPU device")
	return nil
}

// CreateBuffer allocates a GPU storage mirror for n vertices.
func (d *Device) CreateBuffer(label string, n int) (geom.DeviceBuffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.gpuReady {
		return nil, backend.ErrNotInitialized
	}
	if n <= 0 {
		return nil, fmt.Errorf("wgpu: invalid buffer size %d", n)
	}
	return d.newBuffer(label, n)
}

func (d *Device) initGPU() error {
	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	d.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	d.device = openDev.Device
	d.queue = openDev.Queue
	if err := d.createPipelines(); err != nil {
		d.device.Destroy()
		d.device = nil
		d.queue = nil
		return fmt.Errorf("create pipelines: %w", err)
	}
	d.gpuReady = true
	slogger().Info("wgpu: GPU device initialized", "adapter", selected.Info.Name)
	return nil
}

func (d *Device) createPipelines() error {
	shader, err := d.compileTranslateShader()
	if err != nil {
		return err
	}
	d.shader = shader

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "geom_translate_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	d.bindLayout = bindLayout

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "geom_translate_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{d.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	d.pipeLayout = pipeLayout

	pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "geom_translate_pipeline", Layout: d.pipeLayout,
		Compute: hal.ComputeState{Module: d.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	d.pipeline = pipeline

	return nil
}

func (d *Device) destroyPipelines() {
	if d.device == nil {
		return
	}
	if d.pipeline != nil {
		d.device.DestroyComputePipeline(d.pipeline)
		d.pipeline = nil
	}
	if d.pipeLayout != nil {
		d.device.DestroyPipelineLayout(d.pipeLayout)
		d.pipeLayout = nil
	}
	if d.bindLayout != nil {
		d.device.DestroyBindGroupLayout(d.bindLayout)
		d.bindLayout = nil
	}
	if d.shader != nil {
		d.device.DestroyShaderModule(d.shader)
		d.shader = nil
	}
}
