package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"langportal/internal/domain"
	"langportal/internal/repository/sqlstore"
	"langportal/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// recentDays is how many study days the text report lists
const recentDays = 7

func newStatsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			statsRepo := sqlstore.NewStatsRepo(e.db)
			dashboard := service.NewLoggedDashboard(
				service.NewDashboardService(statsRepo, e.cfg.Location()), e.logger)

			stats, err := dashboard.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, stats)
			}

			snap, err := statsRepo.DashboardSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			times := make([]time.Time, 0, len(snap.Sessions))
			for _, s := range snap.Sessions {
				times = append(times, s.StartedAt)
			}

			loc := e.cfg.Location()
			printStats(out, stats, domain.GroupByDay(times, loc), time.Now().In(loc))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func writeJSON(w io.Writer, stats domain.DashboardStats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}

func printStats(w io.Writer, s domain.DashboardStats, days []domain.Day, now time.Time) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)

	bold.Fprintln(w, "Dashboard")
	fmt.Fprintf(w, "  Vocabulary:      %d\n", s.TotalVocabulary)
	fmt.Fprintf(w, "  Words studied:   %d\n", s.TotalWordsStudied)
	green.Fprintf(w, "  Mastered:        %d\n", s.MasteredWords)
	fmt.Fprintf(w, "  Success rate:    %.1f%%\n", s.SuccessRate*100)
	fmt.Fprintf(w, "  Sessions (30d):  %d\n", s.TotalSessions)
	fmt.Fprintf(w, "  Active groups:   %d\n", s.ActiveGroups)
	fmt.Fprintf(w, "  Current streak:  %d\n", s.CurrentStreak)

	if len(days) == 0 {
		return
	}

	today := domain.CalendarDate(now, now.Location())
	bold.Fprintln(w, "Recent study days")
	for i, day := range days {
		if i == recentDays {
			break
		}
		fmt.Fprintf(w, "  %s  %-12s %d\n", day.DateString(), day.DisplayString(today), day.Sessions)
	}
}
