// romio_test.go - ROM I/O round-trip and validation coverage

// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestROM(t *testing.T, words []uint32) string {
	t.Helper()
	raw := make([]byte, len(words)*4)
	for i, w := range words {
		binary.BigEndian.PutUint32(raw[i*4:], w)
	}
	path := filepath.Join(t.TempDir(), "test.z64")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("writing test ROM: %v", err)
	}
	return path
}

func TestLoadROMRoundTrip(t *testing.T) {
	// Decode to words, re-encode to bytes, must yield the same bytes.
	words := make([]uint32, 1024)
	for i := range words {
		words[i] = uint32(i)*0x01010101 + 7
	}
	path := writeTestROM(t, words)

	original, err := os.ReadFile(path)
	require.NoError(t, err, "reading fixture")

	rom, err := LoadROM(path)
	require.NoError(t, err, "LoadROM")

	reencoded := make([]byte, len(rom.words)*4)
	for i, w := range rom.words {
		binary.BigEndian.PutUint32(reencoded[i*4:], w)
	}

	require.Equal(t, original, reencoded, "byte-for-byte round trip through word decode/encode")
}

func TestLoadROMRejectsUndersize(t *testing.T) {
	path := writeTestROM(t, make([]uint32, 16)) // 64 bytes, well under 4096
	if _, err := LoadROM(path); err == nil {
		t.Fatalf("LoadROM accepted an undersized ROM")
	}
}

func TestLoadROMRejectsNonMultipleOfFour(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.z64")
	raw := make([]byte, minROMSize+1)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := LoadROM(path); err == nil {
		t.Fatalf("LoadROM accepted a size that is not a multiple of 4")
	}
}

func TestBootcodeWindow(t *testing.T) {
	words := make([]uint32, 1024)
	for i := range words {
		words[i] = uint32(i)
	}
	path := writeTestROM(t, words)
	rom, err := LoadROM(path)
	if err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	bc := rom.Bootcode()
	if len(bc) != roundCount {
		t.Fatalf("Bootcode() length = %d, want %d", len(bc), roundCount)
	}
	if bc[0] != bootcodeWordOffset {
		t.Fatalf("Bootcode()[0] = %d, want %d", bc[0], bootcodeWordOffset)
	}
}

func TestWriteMatchOutputPath(t *testing.T) {
	words := make([]uint32, 1024)
	path := writeTestROM(t, words)
	rom, err := LoadROM(path)
	require.NoError(t, err, "LoadROM")

	bc := rom.Bootcode()
	bc[1003] = 0xAAAAAAAA
	bc[1007] = 0x00000001

	outPath, err := rom.WriteMatch()
	require.NoError(t, err, "WriteMatch")
	require.True(t, strings.HasSuffix(outPath, ".match.z64"), "WriteMatch path %q", outPath)

	written, err := LoadROM(outPath)
	require.NoError(t, err, "reloading matched ROM")
	gotBC := written.Bootcode()
	require.Equal(t, uint32(0xAAAAAAAA), gotBC[1003], "matched ROM did not persist the compensator word")
	require.Equal(t, uint32(0x00000001), gotBC[1007], "matched ROM did not persist the X word")
}
