package main

import (
	"langportal/internal/repository/sqlstore"
	"langportal/internal/seed"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample words and study sessions into an empty store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			seeder := seed.New(
				sqlstore.NewWordRepo(e.db),
				sqlstore.NewGroupRepo(e.db),
				sqlstore.NewStudyRepo(e.db),
				sqlstore.NewStatsRepo(e.db),
				e.logger,
			)

			seeded, err := seeder.Seed(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !seeded {
				color.New(color.FgYellow).Fprintln(out, "Store already has words, nothing seeded")
				return nil
			}
			color.New(color.FgGreen).Fprintln(out, "Sample data seeded")
			return nil
		},
	}
}
