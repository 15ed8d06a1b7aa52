package main

import (
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/safing/drng/entropy"
)

var (
	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "acquire seed material from the platform entropy sources",
		RunE:  runSeed,
	}

	seedBytes  int
	seedBase58 bool
)

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVarP(&seedBytes, "bytes", "n", 48, "number of bytes to acquire")
	seedCmd.Flags().BoolVar(&seedBase58, "base58", false, "print base58 instead of hex")
}

func runSeed(cmd *cobra.Command, args []string) error {
	seed, err := entropy.Seed(seedBytes)
	if err != nil {
		return err
	}

	if seedBase58 {
		fmt.Println(base58.Encode(seed))
	} else {
		fmt.Println(hex.EncodeToString(seed))
	}
	return nil
}
