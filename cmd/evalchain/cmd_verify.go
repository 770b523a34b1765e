package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evalchain/evalchain"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the chain's hashes, linkage and proof-of-work",
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
		if err := chain.Verify(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "chain is valid (%d blocks)\n", chain.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
