// search.go - search orchestrator: outer Y loop, per-Y patch, GPU dispatch

// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"time"
)

// yRangeEnd is the largest Y value the outer loop will try (2^32 - 2);
// both 0 and 2^32-1 are excluded, per the algorithm's forbidden-zero rule
// and the data model's half-open search-state range.
const yRangeEnd = 0xFFFFFFFE

// SearchResult reports the matching (Y, X) pair once found.
type SearchResult struct {
	Y, X uint32
}

// applyPatch mirrors the per-Y patch protocol: restore the frozen
// post-round-1002 starting state, inject the compensator and Y, run
// rounds 1003-1006, then the independent half of round 1007.
func applyPatch(starting *State, data []uint32, y uint32) *State {
	s := starting.clone()
	compensator := (0 - s.Buffer[12]) - y
	data[1003] = compensator
	data[1004] = y
	data[1005] = 0
	data[1006] = 0
	for round := 1003; round <= 1006; round++ {
		step(s, data, round)
	}
	step1007Indep(s, data)
	return s
}

// GPUDriver is the subset of GPUComputeDriver the orchestrator depends
// on; satisfied by both the Vulkan and headless implementations.
type GPUDriver interface {
	Init() error
	Initialized() bool
	AdapterName() string
	WriteInput(state [stateWordCount]uint32) error
	Run(offset uint32, groupXY uint32) error
	ReadResult() ([resultWordCount]uint32, error)
	Destroy()
}

// Searcher drives the outer Y loop over a fixed seed and bootcode,
// dispatching batches of candidate X through a GPUDriver.
type Searcher struct {
	driver   GPUDriver
	seed     uint32
	bootcode []uint32
	groupXY  uint32
}

// NewSearcher constructs a Searcher. bootcode must be the 1008-word
// search window (see ROM.Bootcode).
func NewSearcher(driver GPUDriver, seed uint32, bootcode []uint32) *Searcher {
	return &Searcher{
		driver:   driver,
		seed:     seed,
		bootcode: bootcode,
		groupXY:  kernelGroupSplit,
	}
}

// Run applies the seed-initialized CPU prefix through round 1002, then
// iterates Y from yStart, patching, dispatching, and reading back until
// a match is found or the Y space is exhausted.
func (sr *Searcher) Run(yStart uint32) (*SearchResult, error) {
	if !sr.driver.Initialized() {
		return nil, fmt.Errorf("GPU compute driver not initialized: no usable adapter")
	}

	stepSize := uint64(sr.groupXY) * uint64(sr.groupXY) * uint64(kernelBatchCount)

	starting := newState(sr.seed, sr.bootcode)
	for round := 1; round <= 1002; round++ {
		step(starting, sr.bootcode, round)
	}

	fmt.Printf("search: adapter=%q group=%d batch=%d step=%d\n",
		sr.driver.AdapterName(), sr.groupXY, kernelBatchCount, stepSize)

	start := time.Now()
	iterations := uint64(0)

	for y := uint64(yStart); y <= yRangeEnd; y++ {
		if y == 0 {
			continue
		}
		yy := uint32(y)

		s := applyPatch(starting, sr.bootcode, yy)
		if !s.checkZeroInvariants() {
			// Invariant violation: the kernel assumes these six words are
			// zero and will otherwise silently fail to match.
			return nil, fmt.Errorf("zero-invariant violation at Y=0x%08X: state=%v", yy, s.Buffer)
		}

		if err := sr.driver.WriteInput(s.Buffer); err != nil {
			return nil, fmt.Errorf("uploading state for Y=0x%08X: %w", yy, err)
		}

		for xBase := uint64(1); xBase < (uint64(1) << 32); xBase += stepSize {
			if err := sr.driver.Run(uint32(xBase), sr.groupXY); err != nil {
				return nil, fmt.Errorf("dispatch at Y=0x%08X, X-base=0x%X: %w", yy, xBase, err)
			}
		}

		result, err := sr.driver.ReadResult()
		if err != nil {
			return nil, fmt.Errorf("reading result for Y=0x%08X: %w", yy, err)
		}

		if result[0] != 0 {
			foundX := result[2]
			sr.bootcode[1007] = foundX
			return &SearchResult{Y: yy, X: foundX}, nil
		}

		iterations++
		if iterations%4 == 0 {
			elapsed := time.Since(start)
			hashCount := iterations << 32
			fmt.Printf("progress: %d Y iterations, elapsed %s, ~%d hashes tried\n", iterations, elapsed, hashCount)
		}
	}

	return nil, fmt.Errorf("search exhausted: no match found for Y in [0x%08X, 0x%08X]", yStart, uint32(yRangeEnd))
}
