package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusquest/internal/task"
	"focusquest/internal/tui"
	"focusquest/internal/views"
)

func (c *CLI) newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run or record focus sessions",
	}

	var noTimer bool
	run := &cobra.Command{
		Use:   "run",
		Short: "Run one focus session with the interactive timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			focusText := ""
			if t, ok := c.app.Tasks.Focused(); ok {
				focusText = t.Text
			}

			if noTimer {
				c.app.Tasks.RecordSessionCompleted()
				c.printSessionSummary()
				return nil
			}

			model, err := tui.Run(tui.New(focusText, c.app.Tasks.Timer().Work))
			if err != nil {
				return err
			}
			if model.Cancelled() {
				fmt.Fprintln(c.stdout, "Session aborted")
				return nil
			}
			if model.Completed() {
				c.app.Tasks.RecordSessionCompleted()
				c.printSessionSummary()
			}
			return nil
		},
	}
	run.Flags().BoolVar(&noTimer, "no-timer", false, "record the session without the interactive timer")

	record := &cobra.Command{
		Use:   "record",
		Short: "Record one completed focus session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Tasks.RecordSessionCompleted()
			c.printSessionSummary()
			return nil
		},
	}

	cmd.AddCommand(run, record)
	return cmd
}

func (c *CLI) printSessionSummary() {
	daily := c.app.Tasks.Daily()
	fmt.Fprintf(c.stdout, "Session recorded: %d today, cycle %d\n", daily.Count, c.app.Tasks.CycleCount())
	views.RenderNotices(c.stdout, c.app.Progress)
}

func (c *CLI) newTimerCmd() *cobra.Command {
	var work, short, long int

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Show or change session durations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("work") || cmd.Flags().Changed("short") || cmd.Flags().Changed("long") {
				c.app.Tasks.UpdateTimerSettings(task.TimerSettings{
					Work:       work,
					ShortBreak: short,
					LongBreak:  long,
				})
			}
			t := c.app.Tasks.Timer()
			fmt.Fprintf(c.stdout, "Work %dm · Short break %dm · Long break %dm\n", t.Work, t.ShortBreak, t.LongBreak)
			return nil
		},
	}

	cmd.Flags().IntVar(&work, "work", 0, "work session minutes")
	cmd.Flags().IntVar(&short, "short", 0, "short break minutes")
	cmd.Flags().IntVar(&long, "long", 0, "long break minutes")

	return cmd
}
