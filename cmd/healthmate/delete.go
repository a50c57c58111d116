package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/premesh-10/HealthMateAI/internal/domain/history"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved check from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		if err := store.Delete(cmd.Context(), history.RecordID(args[0])); err != nil {
			return fmt.Errorf("delete failed: %w", err)
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}
