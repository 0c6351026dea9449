// main.go - CLI front-end: flag parsing, exit-code discipline

// SPDX-License-Identifier: GPL-3.0-or-later

/*
main.go wires the ROM I/O adaptor, the search orchestrator, and the
compiled GPU backend together behind a small positional+flag CLI.
*/

package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

// parseUint32 accepts decimal or "0x"-prefixed hexadecimal, matching the
// CLI's --seed/-s and --offset/-o flag contract.
func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid 32-bit integer: %w", s, err)
	}
	return uint32(v), nil
}

// randomYStart draws the default starting Y uniformly from
// [0, 2^32 - 2^16), leaving headroom below the top of the range so the
// outer search loop never has to wrap.
func randomYStart() uint32 {
	const upperBound = uint64(1) << 32
	const excluded = uint64(1) << 16
	return uint32(rand.Uint64() % (upperBound - excluded))
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ipl3search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var seedStr string
	fs.StringVar(&seedStr, "seed", "", "CIC seed, decimal or 0x-prefixed (required)")
	fs.StringVar(&seedStr, "s", "", "alias for -seed")

	var offsetStr string
	fs.StringVar(&offsetStr, "offset", "", "starting Y value, decimal or 0x-prefixed (default: random)")
	fs.StringVar(&offsetStr, "o", "", "alias for -offset")

	var showVersion bool
	fs.BoolVar(&showVersion, "version", false, "print version and compiled backend, then exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ipl3search [options] rom.z64\n\nBrute-forces the unknown scratch words of an IPL3 bootcode image\nuntil its checksum matches the target for the given CIC seed.\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ipl3search --seed 0x9191 rom.z64\n")
		fmt.Fprintf(os.Stderr, "  ipl3search -s 0x9191 -o 0x1 rom.z64\n")
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if showVersion {
		printFeatures()
		return 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	if seedStr == "" {
		fmt.Fprintln(os.Stderr, "error: --seed/-s is required")
		return 1
	}
	seed, err := parseUint32(seedStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid --seed: %v\n", err)
		return 1
	}

	yStart := randomYStart()
	if offsetStr != "" {
		yStart, err = parseUint32(offsetStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: invalid --offset: %v\n", err)
			return 1
		}
	}

	romPath := fs.Arg(0)
	rom, err := LoadROM(romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	driver, err := NewGPUComputeDriver()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: creating GPU compute driver: %v\n", err)
		return 1
	}
	defer driver.Destroy()

	if err := driver.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: initializing GPU compute driver: %v\n", err)
		return 1
	}
	if !driver.Initialized() {
		fmt.Fprintln(os.Stderr, "error: no usable Vulkan adapter (SPIRV_SHADER_PASSTHROUGH + PUSH_CONSTANTS required)")
		return 1
	}

	searcher := NewSearcher(driver, seed, rom.Bootcode())
	result, err := searcher.Run(yStart)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	outPath, err := rom.WriteMatch()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Printf("match: Y=0x%08X X=0x%08X\n", result.Y, result.X)
	fmt.Printf("wrote %s\n", outPath)
	return 0
}
