package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusquest/internal/agenda"
	"focusquest/internal/views"
)

func (c *CLI) newAgendaCmd() *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show overdue, due-today, and upcoming tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lookahead := agenda.DefaultWindow
			if window != "" {
				var err error
				lookahead, err = agenda.ParseWindow(window)
				if err != nil {
					return err
				}
			}
			v := agenda.Build(c.app.Tasks.SortedView(), c.app.Clock, lookahead)
			views.RenderAgenda(c.stdout, v)
			return nil
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "", "upcoming lookahead, e.g. 3d, 12h, 2w (default 7d)")
	return cmd
}

func (c *CLI) newHistoryCmd() *cobra.Command {
	var (
		days    int
		cleanup int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show per-day completion counts from the local log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.app.History == nil {
				return fmt.Errorf("history is disabled in the configuration")
			}
			if cleanup > 0 {
				deleted, err := c.app.History.Cleanup(cleanup)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "Removed %d events older than %d days\n", deleted, cleanup)
				return nil
			}

			counts, err := c.app.History.DailyCounts(days)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				fmt.Fprintln(c.stdout, "No history yet. Complete a task or a session first.")
				return nil
			}
			for _, dc := range counts {
				fmt.Fprintf(c.stdout, "%s  sessions %2d (%3dm)  tasks %2d\n",
					dc.Day, dc.Sessions, dc.Minutes, dc.Tasks)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 14, "number of days to show")
	cmd.Flags().IntVar(&cleanup, "cleanup", 0, "delete events older than this many days")
	return cmd
}
