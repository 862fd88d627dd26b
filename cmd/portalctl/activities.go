package main

import (
	"fmt"

	"langportal/internal/repository/sqlstore"
	"langportal/internal/service"

	"github.com/spf13/cobra"
)

func newActivitiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activities",
		Short: "List study activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			study := service.NewStudyService(sqlstore.NewStudyRepo(e.db), sqlstore.NewGroupRepo(e.db), e.logger)
			activities, err := study.ListActivities(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(activities) == 0 {
				fmt.Fprintln(out, "No study activities")
				return nil
			}
			for _, a := range activities {
				fmt.Fprintf(out, "%4d  group %-4d %s\n", a.ID, a.GroupID, a.Name)
			}
			return nil
		},
	}
}
