package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/safing/drng/entropy"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "list the entropy sources of this platform in priority order",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	for i, src := range entropy.Sources() {
		status := "ok"
		if err := src.Fill(make([]byte, 16)); err != nil {
			status = "unavailable"
			slog.Debug("source probe failed", "source", src.Name, "err", err)
		}
		fmt.Printf("%d. %s (%s)\n", i+1, src.Name, status)
	}
	return nil
}
