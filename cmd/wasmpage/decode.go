package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/caffeineduck/wasmpage/handle"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <scalar>",
	Short: "Decode a packed handle scalar",
	Long: `Decode a 32-bit handle scalar into its (offset, length) pair, or its
status code when the length field is zero. Accepts decimal or 0x-prefixed
hex.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			return fmt.Errorf("invalid scalar %q: %w", args[0], err)
		}
		h := handle.FromScalar(uint32(v))
		if h.IsStatus() {
			if h == handle.StatusOK {
				fmt.Println("status handle: code 0 (success)")
			} else {
				fmt.Printf("status handle: code %d (failure)\n", h.StatusCode())
			}
			return nil
		}
		fmt.Printf("data handle: offset=%d length=%d (range [%d, %d))\n",
			h.Offset(), h.Length(), h.Offset(), h.Offset()+h.Length())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
