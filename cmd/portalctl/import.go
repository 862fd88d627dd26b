package main

import (
	"fmt"
	"io"

	"langportal/internal/importer"
	"langportal/internal/repository/sqlstore"
	"langportal/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	cfg := importer.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import words from a spreadsheet",
		Long: "Import words from an .xlsx sheet. Columns: A word, B transliteration, " +
			"C meaning, D part of speech, E optional group.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.StartRow < 1 {
				return fmt.Errorf("--start-row must be at least 1")
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			words := service.NewWordService(sqlstore.NewWordRepo(e.db), sqlstore.NewGroupRepo(e.db), e.logger)
			result, err := importer.New(words, e.logger).ImportFile(cmd.Context(), args[0], cfg)
			if result != nil {
				printImportResult(cmd.OutOrStdout(), result)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&cfg.SheetName, "sheet", "", "Sheet to import (defaults to the first sheet)")
	cmd.Flags().IntVar(&cfg.StartRow, "start-row", cfg.StartRow, "First row to import, 1-based")

	return cmd
}

func printImportResult(w io.Writer, r *importer.Result) {
	fmt.Fprintf(w, "Processed: %d\n", r.TotalProcessed)
	color.New(color.FgGreen).Fprintf(w, "Created:   %d\n", r.Created)
	fmt.Fprintf(w, "Grouped:   %d\n", r.Grouped)

	if len(r.Errors) == 0 {
		return
	}
	red := color.New(color.FgRed)
	red.Fprintf(w, "Errors:    %d\n", len(r.Errors))
	for _, msg := range r.Errors {
		red.Fprintf(w, "  %s\n", msg)
	}
}
