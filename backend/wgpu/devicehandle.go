//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle is the device provider contract from gpucontext. Anything
// that exposes a live GPU device through it (a gogpu window, a wgpu
// canvas) can lend that device to geom instead of letting this package
// open a second one on the same adapter.
type DeviceHandle = gpucontext.DeviceProvider

// Adopt wraps an existing GPU device from a provider. The returned Device
// still needs Init (or registration via geom.SetDefaultDevice, which runs
// it) to build its pipeline; adopted resources are never destroyed on
// Close.
func Adopt(provider DeviceHandle) (*Device, error) {
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	d := New()
	d.device = device
	d.queue = queue
	d.externalDevice = true
	return d, nil
}

// halFromProvider extracts the HAL device and queue from a provider. The
// provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func halFromProvider(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}
	return device, queue, nil
}
