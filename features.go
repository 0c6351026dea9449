// features.go - compiled-backend banner

// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"runtime"
	"sort"
)

// version is the tool's reported version string.
const version = "1.0.0"

// compiledFeatures tracks build-time backend selection via init()
// registration: gpu_compute.go appends "gpu:vulkan" in the default build,
// gpu_compute_headless.go appends "gpu:headless" under the headless
// build tag.
var compiledFeatures []string

// printFeatures prints the version/runtime banner and the compiled
// search-engine backend, used by the CLI's -version flag.
func printFeatures() {
	fmt.Printf("ipl3search %s\n", version)
	fmt.Printf("  Go version: %s\n", runtime.Version())
	fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println()
	fmt.Println("Compiled backend:")

	sort.Strings(compiledFeatures)
	for _, f := range compiledFeatures {
		fmt.Printf("  %s\n", f)
	}
	if len(compiledFeatures) == 0 {
		fmt.Println("  (none)")
	}
}
