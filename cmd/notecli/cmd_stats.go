package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"baseballnote/client"

	"github.com/spf13/cobra"
)

var (
	statsFrom           string
	statsTo             string
	statsIncludeMissing bool
	statsWeek           string
)

// statsUserID returns args[0], or the signed-in account's id.
func statsUserID(ctx context.Context, s *client.Session, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	u, err := s.Client().FetchUser(ctx, s.State().User.UID)
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

func parseDay(flag, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: want YYYY-MM-DD, got %q", flag, v)
	}
	return t, nil
}

var statsCmd = &cobra.Command{
	Use:   "stats [user_id]",
	Short: "Summarize notes over a date range",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDay("from", statsFrom)
		if err != nil {
			return err
		}
		to, err := parseDay("to", statsTo)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		userID, err := statsUserID(ctx, s, args)
		if err != nil {
			return err
		}
		st, err := s.Client().GetNoteStats(ctx, userID, client.StatsRange{From: from, To: to, IncludeMissing: statsIncludeMissing})
		if err != nil {
			return err
		}
		return printResult(cmd, st, func() {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s .. %s: %d notes on %d days\n", st.Range.From, st.Range.To, st.NoteCount, st.Metadata.DaysWithNotes)
			fmt.Fprintf(out, "weight avg %.1f (%.1f-%.1f), sleep avg %.1f\n", st.AvgWeight, st.MinWeight, st.MaxWeight, st.AvgSleep)
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MENU\tTOTAL\tPER DAY")
			for _, m := range st.Trainings {
				fmt.Fprintf(w, "%s\t%d\t%.2f\n", m.Menu, m.Total, m.AvgPerDay)
			}
			_ = w.Flush()
		})
	},
}

var statsWeekCmd = &cobra.Command{
	Use:   "week [user_id]",
	Short: "Show one week day by day",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseDay("start", statsWeek)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()
		s, err := restoreSession(ctx)
		if err != nil {
			return err
		}
		userID, err := statsUserID(ctx, s, args)
		if err != nil {
			return err
		}
		week, err := s.Client().GetWeeklyOverview(ctx, userID, start)
		if err != nil {
			return err
		}
		return printResult(cmd, week, func() {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tNOTES\tWEIGHT\tSLEEP\tTRAININGS")
			for _, d := range week.Days {
				weight, sleep := "-", "-"
				if d.Weight != nil {
					weight = fmt.Sprintf("%.1f", *d.Weight)
				}
				if d.Sleep != nil {
					sleep = fmt.Sprintf("%.1f", *d.Sleep)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\n", d.Date, d.Notes, weight, sleep, d.Trainings)
			}
			_ = w.Flush()
		})
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "First day, YYYY-MM-DD (default: first of this month)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "Last day, YYYY-MM-DD (default: end of this month)")
	statsCmd.Flags().BoolVar(&statsIncludeMissing, "include-missing", false, "Average trainings over every day in the range")
	statsWeekCmd.Flags().StringVar(&statsWeek, "start", "", "Any day of the week, YYYY-MM-DD (default: this week)")

	statsCmd.AddCommand(statsWeekCmd)
}
