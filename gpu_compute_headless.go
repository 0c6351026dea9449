//go:build headless

// gpu_compute_headless.go - software fallback for the GPU compute driver

// SPDX-License-Identifier: GPL-3.0-or-later

/*
gpu_compute_headless.go replaces gpu_compute.go under the "headless"
build tag: it runs the same batch of candidate X values through the
checksum engine's own step functions instead of a Vulkan dispatch. This
keeps the exact same exported type name and method set so the rest of
the program compiles unchanged, the same way a software rasterizer can
stand in behind an identical renderer type when no GPU is present.

It exists for portability: CI machines and sandboxed test runs have no
Vulkan driver, so gpu_compute_headless_test.go builds under this tag
to exercise the real write_input/run/read_result contract without GPU
hardware. It is not a production search mode - searching 2^32
candidates per Y in a Go loop is not a viable substitute for the GPU
kernel at full scale, only for test-sized X ranges.
*/

package main

func init() {
	compiledFeatures = append(compiledFeatures, "gpu:headless")
}

// GPUComputeDriver is the headless stand-in for the Vulkan driver. It
// holds the uploaded state and replays the kernel's math in Go.
type GPUComputeDriver struct {
	state       [stateWordCount]uint32
	result      [resultWordCount]uint32
	initialized bool
}

// NewGPUComputeDriver constructs the headless driver. It never errors,
// matching the Vulkan driver's constructor shape.
func NewGPUComputeDriver() (*GPUComputeDriver, error) {
	return &GPUComputeDriver{}, nil
}

// Init always succeeds: there is no device to acquire.
func (d *GPUComputeDriver) Init() error {
	d.initialized = true
	return nil
}

// Initialized always reports true once Init has run.
func (d *GPUComputeDriver) Initialized() bool {
	return d.initialized
}

// AdapterName reports the software stand-in's name.
func (d *GPUComputeDriver) AdapterName() string {
	return "headless (software)"
}

// WriteInput stores the 16-word state for the next Run calls.
func (d *GPUComputeDriver) WriteInput(state [stateWordCount]uint32) error {
	d.state = state
	return nil
}

// Run evaluates groupXY² × kernelBatchCount candidate X values
// starting at offset, mirroring the GPU kernel's per-thread batch loop
// (gpu_shader.go). The sticky success flag is honored: once set, later
// calls within the same Y slice must not overwrite it.
func (d *GPUComputeDriver) Run(offset uint32, groupXY uint32) error {
	if d.result[0] != 0 {
		return nil
	}

	threadCount := uint64(groupXY) * uint64(groupXY)
	for t := uint64(0); t < threadCount; t++ {
		for i := uint64(0); i < kernelBatchCount; i++ {
			x := uint32(uint64(offset) + t*kernelBatchCount + i)
			if x == 0 {
				continue
			}

			s := &State{Buffer: d.state}
			stepTail(s, 0, x, 1007)
			stepHead(s, x, 0, 1008)

			if s.Buffer[0] == 0 && s.Buffer[1] == 0 {
				if d.result[0] == 0 {
					d.result[0] = 1
					d.result[1] = s.Buffer[0]
					d.result[2] = x
				}
				return nil
			}
		}
	}

	return nil
}

// ReadResult returns the sticky result buffer as-is.
func (d *GPUComputeDriver) ReadResult() ([resultWordCount]uint32, error) {
	return d.result, nil
}

// Destroy resets the driver's in-memory state.
func (d *GPUComputeDriver) Destroy() {
	d.state = [stateWordCount]uint32{}
	d.result = [resultWordCount]uint32{}
	d.initialized = false
}
