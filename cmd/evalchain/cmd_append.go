package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evalchain/evalchain"
	"github.com/evalchain/evalchain/endf"
)

var appendCmd = &cobra.Command{
	Use:   "append <evaluation-file>",
	Short: "Record a new revision of an evaluation file on the chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		tape, err := endf.ReadTapeFile(args[0])
		if err != nil {
			return err
		}
		data, err := tape.Snapshot()
		if err != nil {
			return err
		}
		snapshot, err := evalchain.NewSnapshot(data)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		chain, err := evalchain.LoadChain(ctx, store, cfg.ChainFile, nil)
		if err != nil {
			return err
		}
		logger.Info("processing chain", "chain", cfg.ChainFile, "blocks", chain.Len())
		if err := chain.Verify(); err != nil {
			return fmt.Errorf("existing chain failed verification: %w", err)
		}

		logger.Info("adding patch", "tape", tape.ID, "difficulty", cfg.Difficulty)
		chain, err = chain.Append(snapshot, cfg.Difficulty)
		if err != nil {
			return err
		}
		if err := chain.Verify(); err != nil {
			return fmt.Errorf("extended chain failed verification: %w", err)
		}
		if err := evalchain.SaveChain(ctx, store, cfg.ChainFile, chain, nil); err != nil {
			return err
		}
		logger.Info("chain extended", "blocks", chain.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(appendCmd)
}
