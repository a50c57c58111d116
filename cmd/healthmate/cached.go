package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

var cachedCmd = &cobra.Command{
	Use:   "cached",
	Short: "Show locally cached saves without contacting the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := localCache().Load()
		if len(entries) == 0 {
			fmt.Println("Local cache is empty.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %s  %s\n", e.BackendID, e.SavedAt.Format("2006-01-02 15:04:05"), truncate(e.Symptoms, 60))
			for _, c := range triage.Normalize(&e.Result) {
				fmt.Printf("    %s (%d%%, %s)\n", c.Name, c.ConfidencePercent, c.Tier)
			}
		}
		return nil
	},
}
