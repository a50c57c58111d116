package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/premesh-10/HealthMateAI/internal/client"
	"github.com/premesh-10/HealthMateAI/internal/domain/history"
)

var (
	exportSearch string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved checks to a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		vm := client.NewViewModel(newStore())
		defer vm.Close()

		if err := vm.Load(cmd.Context(), 200, 0); err != nil {
			return err
		}
		vm.SetSearch(exportSearch)

		filename, csv, err := vm.Export(time.Now())
		if err != nil {
			if errors.Is(err, history.ErrNothingToExport) {
				fmt.Println("Nothing to export.")
				return nil
			}
			return err
		}

		out := exportOut
		if out == "" {
			out = filename
		} else {
			_ = os.MkdirAll(filepath.Dir(out), 0o755)
		}
		if err := os.WriteFile(out, []byte(csv), 0o644); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "filter by symptom text before exporting")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (defaults to the dated artifact name)")
}
