package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/premesh-10/HealthMateAI/internal/client"
	"github.com/premesh-10/HealthMateAI/internal/domain/history"
)

var (
	historySearch string
	historyLimit  int
	historySkip   int
	historyDetail string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved symptom checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		vm := client.NewViewModel(newStore())
		defer vm.Close()

		if err := vm.Load(cmd.Context(), historyLimit, historySkip); err != nil {
			return err
		}

		if historyDetail != "" {
			entry, ok := vm.Detail(history.RecordID(historyDetail))
			if !ok {
				return fmt.Errorf("no entry with id %s in the loaded set", historyDetail)
			}
			printEntry(entry)
			return nil
		}

		vm.SetSearch(historySearch)
		entries := vm.Visible()
		if len(entries) == 0 {
			fmt.Println("No saved checks found.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %s %s  %-40s  %s (%d%%, %s)\n",
				e.ID, e.Date, e.Time, truncate(e.Symptoms, 40), e.Top.Name, e.Top.ConfidencePercent, e.Top.Tier)
		}
		return nil
	},
}

func printEntry(e history.HistoryEntry) {
	fmt.Printf("ID:        %s\n", e.ID)
	fmt.Printf("Date:      %s %s\n", e.Date, e.Time)
	fmt.Printf("Symptoms:  %s\n", e.Symptoms)
	fmt.Printf("Top guess: %s (%d%%, %s)\n", e.Top.Name, e.Top.ConfidencePercent, e.Top.Tier)
}

// truncate shortens s to at most n characters, counting runes so multibyte
// text is never cut mid-character.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	historyCmd.Flags().StringVar(&historySearch, "search", "", "filter by symptom text")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum entries to load")
	historyCmd.Flags().IntVar(&historySkip, "skip", 0, "entries to skip")
	historyCmd.Flags().StringVar(&historyDetail, "detail", "", "show one entry by id")
}
