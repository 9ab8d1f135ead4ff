// Package main provides the fadiff CLI: evaluate expressions over input
// variables and print their values and partial derivatives.
package main

import (
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
