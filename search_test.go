// search_test.go - coverage for the per-Y patch protocol and search orchestrator

// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"testing"
)

// fakeDriver is a GPUDriver test double that lets the orchestrator's
// control flow (patch/upload/dispatch/read-back loop, error propagation,
// success short-circuiting) be exercised without a real or headless GPU
// backend.
type fakeDriver struct {
	initialized bool
	adapterName string

	writeErr error
	runErr   error
	readErr  error

	lastState [stateWordCount]uint32
	runCalls  int

	// succeedOnRun, if non-zero, makes ReadResult report success once
	// Run has been called this many times (cumulative across the whole
	// search, not reset per Y) with the given X.
	succeedOnRun int
	succeedX     uint32
	succeeded    bool
}

func (d *fakeDriver) Init() error         { return nil }
func (d *fakeDriver) Initialized() bool   { return d.initialized }
func (d *fakeDriver) AdapterName() string { return d.adapterName }
func (d *fakeDriver) Destroy()            {}

func (d *fakeDriver) WriteInput(state [stateWordCount]uint32) error {
	d.lastState = state
	return d.writeErr
}

func (d *fakeDriver) Run(offset uint32, groupXY uint32) error {
	d.runCalls++
	if d.succeedOnRun != 0 && d.runCalls >= d.succeedOnRun {
		d.succeeded = true
	}
	return d.runErr
}

func (d *fakeDriver) ReadResult() ([resultWordCount]uint32, error) {
	if d.readErr != nil {
		return [resultWordCount]uint32{}, d.readErr
	}
	if d.succeeded {
		return [resultWordCount]uint32{1, 0, d.succeedX, 0}, nil
	}
	return [resultWordCount]uint32{}, nil
}

func compliantBootcode() []uint32 {
	data := make([]uint32, roundCount)
	data[0] = calcInitValue(0x9191)
	return data
}

func TestSearcherRunRejectsUninitializedDriver(t *testing.T) {
	driver := &fakeDriver{initialized: false}
	sr := NewSearcher(driver, 0x9191, compliantBootcode())

	if _, err := sr.Run(1); err == nil {
		t.Fatalf("Run with an uninitialized driver returned no error")
	}
}

func TestSearcherRunReportsFirstMatch(t *testing.T) {
	driver := &fakeDriver{initialized: true, adapterName: "fake", succeedOnRun: 1, succeedX: 0xCAFEBABE}
	bootcode := compliantBootcode()
	sr := NewSearcher(driver, 0x9191, bootcode)

	result, err := sr.Run(1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Y != 1 {
		t.Fatalf("result.Y = 0x%08X, want 0x00000001", result.Y)
	}
	if result.X != 0xCAFEBABE {
		t.Fatalf("result.X = 0x%08X, want 0xCAFEBABE", result.X)
	}
	if bootcode[1004] != 1 {
		t.Fatalf("bootcode[1004] (Y) = 0x%08X, want 0x00000001", bootcode[1004])
	}
	if bootcode[1007] != 0xCAFEBABE {
		t.Fatalf("bootcode[1007] (X) not patched into the bootcode slice: 0x%08X", bootcode[1007])
	}
}

func TestSearcherRunSkipsYZero(t *testing.T) {
	// Y == 0 is forbidden: mulDiff degenerates for a zero factor.
	// Starting the outer loop at yStart == 0 must not dispatch for
	// Y == 0 itself.
	driver := &fakeDriver{initialized: true, succeedOnRun: 1, succeedX: 0x1}
	sr := NewSearcher(driver, 0x9191, compliantBootcode())

	result, err := sr.Run(0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Y == 0 {
		t.Fatalf("Run reported a match at Y == 0, which the algorithm forbids")
	}
}

func TestSearcherRunPropagatesDispatchError(t *testing.T) {
	wantErr := errors.New("dispatch failed")
	driver := &fakeDriver{initialized: true, runErr: wantErr}
	sr := NewSearcher(driver, 0x9191, compliantBootcode())

	_, err := sr.Run(1)
	if err == nil {
		t.Fatalf("Run returned no error despite a failing dispatch")
	}
}

func TestSearcherRunPropagatesReadResultError(t *testing.T) {
	wantErr := errors.New("read-back failed")
	driver := &fakeDriver{initialized: true, readErr: wantErr}
	sr := NewSearcher(driver, 0x9191, compliantBootcode())

	_, err := sr.Run(1)
	if err == nil {
		t.Fatalf("Run returned no error despite a failing result read-back")
	}
}

func TestSearcherRunDetectsInvariantViolation(t *testing.T) {
	// The zero invariants only hold when data[0] == init_value(seed):
	// a bootcode whose first word doesn't match the seed's init value
	// starts from a nonzero state, so indices 1, 7, 8, 14, 15 (never
	// written by step at all) never reach zero. Run must refuse to
	// dispatch rather than silently search with a corrupted handoff.
	driver := &fakeDriver{initialized: true}
	data := make([]uint32, roundCount) // data[0] left at 0, not calcInitValue(0x9191)
	sr := NewSearcher(driver, 0x9191, data)

	if _, err := sr.Run(1); err == nil {
		t.Fatalf("Run accepted a bootcode whose patch protocol violates the zero invariants")
	}
}

func TestApplyPatchWritesScratchWords(t *testing.T) {
	data := compliantBootcode()
	starting := newState(0x9191, data)
	for round := 1; round <= 1002; round++ {
		step(starting, data, round)
	}

	applyPatch(starting, data, 0x55)

	if data[1004] != 0x55 {
		t.Fatalf("data[1004] = 0x%08X, want Y = 0x55", data[1004])
	}
	if data[1005] != 0 || data[1006] != 0 {
		t.Fatalf("data[1005]/data[1006] = 0x%08X/0x%08X, want both 0", data[1005], data[1006])
	}
}
