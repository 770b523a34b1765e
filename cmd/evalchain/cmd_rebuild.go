package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evalchain/evalchain"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild [index]",
	Short: "Reconstruct a recorded snapshot by replaying the chain's patches",
	Long: `rebuild replays the chain's patches in order and prints the reconstructed
snapshot as JSON.  With no argument it rebuilds the latest revision;
with an index it rebuilds the snapshot as of that block.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		chain, err := evalchain.LoadChain(cmd.Context(), store, cfg.ChainFile, nil)
		if err != nil {
			return err
		}
		if err := chain.Verify(); err != nil {
			return err
		}
		index := chain.Len() - 1
		if len(args) == 1 {
			index, err = strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad block index %q", args[0])
			}
		}
		snapshot, err := chain.SnapshotAt(index, nil)
		if err != nil {
			return err
		}
		var v interface{}
		if err := snapshot.Value(&v); err != nil {
			return err
		}
		pretty, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
