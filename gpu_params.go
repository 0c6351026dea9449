// gpu_params.go - GPU buffer and batching parameters shared by both backends

// SPDX-License-Identifier: GPL-3.0-or-later

package main

const (
	// stateWordCount is the width of the state buffer bound at slot 0.
	stateWordCount = 16
	// resultWordCount is the width of the result buffer bound at slot 1.
	resultWordCount = 4

	// kernelBatchCount is the number of candidate X values one kernel
	// invocation evaluates in its inner loop.
	kernelBatchCount = 128
	// kernelGroupSplit is the default workgroup grid edge length: one
	// dispatch covers kernelGroupSplit² × kernelBatchCount candidates.
	kernelGroupSplit = 512
)
