package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wasmpage",
	Short: "Inspect and simulate packed wasm page handles",
	Long: `wasmpage - Developer tooling for the single-scalar handle convention.

A handle packs an (offset, length) pair describing a range inside a shared
64 KiB wasm memory page into one 32-bit scalar; length zero turns the
offset field into a status code. Decode scalars captured from a host/guest
boundary, or drive a scratch page interactively to see how the stack
allocator hands out ranges.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
