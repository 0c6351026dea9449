// romio.go - ROM I/O adaptor: byte/word conversion and patched-image output

// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// bootcodeWordOffset is the word index where the 1008-word search window
// begins within the full 1024-word bootcode image.
const bootcodeWordOffset = 16

// minROMSize is the smallest accepted ROM size in bytes (one 4 KiB
// bootcode image, nothing more is required by the search).
const minROMSize = 4096

// ROM holds a bootcode image as big-endian 32-bit words and the path it
// was loaded from.
type ROM struct {
	path  string
	words []uint32
}

// LoadROM reads path, validates its size, and decodes it as big-endian
// 32-bit words.
func LoadROM(path string) (*ROM, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	if len(raw) < minROMSize {
		return nil, fmt.Errorf("ROM size %d is below the minimum %d bytes", len(raw), minROMSize)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("ROM size %d is not a multiple of 4", len(raw))
	}

	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(raw[i*4:])
	}

	return &ROM{path: path, words: words}, nil
}

// Bootcode returns the mutable 1008-word search window starting at
// bootcodeWordOffset.
func (r *ROM) Bootcode() []uint32 {
	return r.words[bootcodeWordOffset : bootcodeWordOffset+roundCount]
}

// WriteMatch serializes the full word array back to big-endian bytes and
// writes it to "<stem>.match.z64" beside the original input.
func (r *ROM) WriteMatch() (string, error) {
	raw := make([]byte, len(r.words)*4)
	for i, w := range r.words {
		binary.BigEndian.PutUint32(raw[i*4:], w)
	}

	outPath := matchPath(r.path)
	if err := os.WriteFile(outPath, raw, 0644); err != nil {
		return "", fmt.Errorf("writing matched ROM: %w", err)
	}
	return outPath, nil
}

// matchPath derives "<stem>.match.z64" from an input path, stripping any
// existing extension.
func matchPath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return stem + ".match.z64"
}
