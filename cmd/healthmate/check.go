package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/premesh-10/HealthMateAI/internal/domain/history"
	"github.com/premesh-10/HealthMateAI/internal/domain/triage"
)

var checkSave bool

var checkCmd = &cobra.Command{
	Use:   "check <symptoms...>",
	Short: "Analyze a symptom description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symptoms := strings.Join(args, " ")

		session := newSession()
		raw, err := session.Analyze(cmd.Context(), symptoms)
		if err != nil {
			return err
		}

		conditions := triage.Normalize(raw)
		if len(conditions) == 0 {
			fmt.Println("No conditions could be identified.")
		}
		for i, c := range conditions {
			flag := ""
			if c.IsRedFlag {
				flag = "  [RED FLAG]"
			}
			fmt.Printf("%d. %s (%d%%) - %s%s\n", i+1, c.Name, c.ConfidencePercent, c.Tier, flag)
			fmt.Printf("   %s\n", c.Explanation)
			fmt.Printf("   %s\n", c.Reasoning)
		}
		if raw.Disclaimer != "" {
			fmt.Println()
			fmt.Println(raw.Disclaimer)
		}

		if checkSave {
			store := newStore()
			rec, err := store.Create(cmd.Context(), symptoms, *raw, map[string]any{
				history.MetaSource:    "healthmate-cli",
				history.MetaClientSig: clientSignature(),
			})
			if err != nil {
				return fmt.Errorf("analysis shown above, but saving failed: %w", err)
			}
			fmt.Printf("\nSaved as %s\n", rec.ID)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkSave, "save", false, "persist the result to history")
}
