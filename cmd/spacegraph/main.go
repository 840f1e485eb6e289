// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "spacegraph: %v\n", err)
		os.Exit(1)
	}
}
