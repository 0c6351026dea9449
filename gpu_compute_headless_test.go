//go:build headless

// gpu_compute_headless_test.go - coverage for the headless driver's write/run/read contract

// SPDX-License-Identifier: GPL-3.0-or-later

package main

import "testing"

func TestGPUComputeHeadlessWriteRunReadMatch(t *testing.T) {
	driver, err := NewGPUComputeDriver()
	if err != nil {
		t.Fatalf("NewGPUComputeDriver: %v", err)
	}
	defer driver.Destroy()

	if err := driver.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !driver.Initialized() {
		t.Fatal("headless driver did not report itself initialized after Init")
	}

	const wantX = uint32(1)
	if err := driver.WriteInput(matchingHeadlessState(wantX)); err != nil {
		t.Fatalf("WriteInput: %v", err)
	}
	if err := driver.Run(wantX, 1); err != nil {
		t.Fatalf("Run: %v", err)
	}

	result, err := driver.ReadResult()
	if err != nil {
		t.Fatalf("ReadResult: %v", err)
	}
	if result[0] == 0 {
		t.Fatalf("ReadResult reported no match for a state constructed to match at X=0x%08X", wantX)
	}
	if result[2] != wantX {
		t.Fatalf("ReadResult X = 0x%08X, want 0x%08X", result[2], wantX)
	}
}

func TestGPUComputeHeadlessRunIsSticky(t *testing.T) {
	driver, err := NewGPUComputeDriver()
	if err != nil {
		t.Fatalf("NewGPUComputeDriver: %v", err)
	}
	defer driver.Destroy()
	if err := driver.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	const wantX = uint32(1)
	if err := driver.WriteInput(matchingHeadlessState(wantX)); err != nil {
		t.Fatalf("WriteInput: %v", err)
	}
	if err := driver.Run(wantX, 1); err != nil {
		t.Fatalf("Run: %v", err)
	}
	first, err := driver.ReadResult()
	if err != nil {
		t.Fatalf("ReadResult: %v", err)
	}
	if first[0] == 0 {
		t.Fatal("expected a match on the first Run")
	}

	// A later Run over a disjoint X range, with no match of its own, must
	// not clear or overwrite the sticky result from the first call.
	if err := driver.Run(1000, 1); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	second, err := driver.ReadResult()
	if err != nil {
		t.Fatalf("ReadResult after second Run: %v", err)
	}
	if second != first {
		t.Fatalf("sticky result changed after a non-matching Run: first=%v second=%v", first, second)
	}
}
