package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evalchain/evalchain"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List the chain's blocks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		chain, err := evalchain.LoadChain(cmd.Context(), store, cfg.ChainFile, nil)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, block := range chain.Blocks() {
			var ops []json.RawMessage
			if err := json.Unmarshal(block.Patch, &ops); err != nil {
				return fmt.Errorf("block %d: bad patch: %w", block.Index, err)
			}
			fmt.Fprintf(out, "%4d  %s  ops=%-4d difficulty=%-3d %s\n",
				block.Index,
				block.Timestamp.Format(time.RFC3339),
				len(ops),
				block.Difficulty,
				block.Hash)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}
