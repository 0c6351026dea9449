// gpu_match_test.go - shared fixture for the GPU driver contract tests

// SPDX-License-Identifier: GPL-3.0-or-later

package main

// matchingHeadlessState returns a 16-word state guaranteed to produce a
// match at the given X. Round 1008's head pass is the only write that
// reaches buffer[0] once round 1007's tail has already run with cur=0
// (s.Buffer[0] += mulDiff(1007-1008, x, 1008)), so setting buffer[0] to
// the additive inverse of that term zeroes it. buffer[1] is one of the
// indices step never writes at all, so leaving every other word at zero
// keeps it zero without any extra bookkeeping.
func matchingHeadlessState(x uint32) [stateWordCount]uint32 {
	delta := mulDiff(^uint32(0), x, roundCount)
	var state [stateWordCount]uint32
	state[0] = 0 - delta
	return state
}
