package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"focusquest/internal/cli/prompt"
	"focusquest/internal/task"
	"focusquest/internal/views"
)

func (c *CLI) newAddCmd() *cobra.Command {
	var (
		category string
		priority string
		due      string
		at       string
		estimate int
		recur    string
	)

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := task.Draft{
				Text:              strings.Join(args, " "),
				Category:          category,
				Priority:          task.Priority(priority),
				DueDate:           due,
				DueTime:           at,
				EstimatedSessions: estimate,
				Recurrence:        task.Recurrence(recur),
			}
			t, err := c.app.Tasks.Add(draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "Added %s (%s)\n", t.Text, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "task category")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(task.PriorityMedium), "priority: Low, Medium or High")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&at, "at", "", "due time (HH:MM)")
	cmd.Flags().IntVar(&estimate, "estimate", 1, "estimated focus sessions")
	cmd.Flags().StringVar(&recur, "recur", "", "recurrence: daily, weekly or monthly")

	return cmd
}

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks in the active sort order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd)
		},
	}
}

func (c *CLI) runList(cmd *cobra.Command) error {
	views.RenderNotices(c.stdout, c.app.Progress)
	views.RenderTasks(c.stdout, c.app.Tasks.SortedView(), c.app.Tasks.FocusID())
	return nil
}

func (c *CLI) newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <task>",
		Short: "Toggle a task's completion",
		Long:  "Toggle completion. Completing a recurring task schedules its successor;\ncompleting the focused task advances the focus to the next open task.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.resolveTask(args[0])
			if err != nil {
				return err
			}
			if err := c.app.Tasks.ToggleComplete(t.ID); err != nil {
				return err
			}
			updated, _ := c.app.Tasks.Get(t.ID)
			if updated.Completed {
				fmt.Fprintf(c.stdout, "Completed %s\n", updated.Text)
			} else {
				fmt.Fprintf(c.stdout, "Reopened %s\n", updated.Text)
			}
			views.RenderNotices(c.stdout, c.app.Progress)
			return nil
		},
	}
}

func (c *CLI) newUpdateCmd() *cobra.Command {
	var (
		text     string
		category string
		priority string
		due      string
		at       string
		estimate int
		recur    string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "update <task>",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.resolveTask(args[0])
			if err != nil {
				return err
			}

			var patch task.Patch
			if cmd.Flags().Changed("text") {
				patch.Text = &text
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("priority") {
				p := task.Priority(priority)
				patch.Priority = &p
			}
			if cmd.Flags().Changed("due") {
				patch.DueDate = &due
			}
			if cmd.Flags().Changed("at") {
				patch.DueTime = &at
			}
			if cmd.Flags().Changed("estimate") {
				patch.EstimatedSessions = &estimate
			}
			if cmd.Flags().Changed("recur") {
				r := task.Recurrence(recur)
				patch.Recurrence = &r
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}

			if err := c.app.Tasks.Update(t.ID, patch); err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "Updated %s\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "task text")
	cmd.Flags().StringVarP(&category, "category", "c", "", "task category")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority: Low, Medium or High")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&at, "at", "", "due time (HH:MM, empty clears)")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "estimated focus sessions")
	cmd.Flags().StringVar(&recur, "recur", "", "recurrence: none, daily, weekly or monthly")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}

func (c *CLI) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.resolveTask(args[0])
			if err != nil {
				return err
			}
			question := fmt.Sprintf("Delete %q?", t.Text)
			if !prompt.Confirm(cmd.InOrStdin(), c.stdout, question, c.yes) {
				fmt.Fprintln(c.stdout, "Cancelled")
				return nil
			}
			if err := c.app.Tasks.Delete(t.ID); err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "Deleted %s\n", t.Text)
			return nil
		},
	}
}

func (c *CLI) newFocusCmd() *cobra.Command {
	var (
		clear bool
		pick  bool
	)

	cmd := &cobra.Command{
		Use:   "focus [task]",
		Short: "Show or set the focused task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clear {
				if err := c.app.Tasks.SetFocus(""); err != nil {
					return err
				}
				fmt.Fprintln(c.stdout, "Focus cleared")
				return nil
			}
			if pick {
				var open []task.Task
				for _, t := range c.app.Tasks.SortedView() {
					if !t.Completed {
						open = append(open, t)
					}
				}
				sel := &prompt.TaskSelector{
					Tasks:    open,
					Prompt:   "Pick a task to focus:",
					Reader:   cmd.InOrStdin(),
					Writer:   c.stdout,
					NoPrompt: c.yes,
				}
				t, err := sel.Run()
				if err != nil {
					return err
				}
				if err := c.app.Tasks.SetFocus(t.ID); err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "Focused: %s\n", t.Text)
				return nil
			}
			if len(args) == 0 {
				if t, ok := c.app.Tasks.Focused(); ok {
					fmt.Fprintf(c.stdout, "Focused: %s (%s)\n", t.Text, t.ID)
				} else {
					fmt.Fprintln(c.stdout, "No task focused")
				}
				return nil
			}
			t, err := c.resolveTask(args[0])
			if err != nil {
				return err
			}
			if err := c.app.Tasks.SetFocus(t.ID); err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "Focused: %s\n", t.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "clear the focus pointer")
	cmd.Flags().BoolVar(&pick, "pick", false, "pick the task interactively")
	return cmd
}

func (c *CLI) newSubtaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage subtasks",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <task> <text>",
			Short: "Add a subtask",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := c.resolveTask(args[0])
				if err != nil {
					return err
				}
				sub, err := c.app.Tasks.AddSubtask(t.ID, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "Added subtask %s (%s)\n", sub.Text, sub.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "done <task> <subtask-id>",
			Short: "Toggle a subtask",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := c.resolveTask(args[0])
				if err != nil {
					return err
				}
				return c.app.Tasks.ToggleSubtask(t.ID, args[1])
			},
		},
		&cobra.Command{
			Use:   "rm <task> <subtask-id>",
			Short: "Delete a subtask",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := c.resolveTask(args[0])
				if err != nil {
					return err
				}
				return c.app.Tasks.DeleteSubtask(t.ID, args[1])
			},
		},
	)

	return cmd
}

func (c *CLI) newAttachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Manage task attachments",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <task> <name> <uri>",
			Short: "Attach a reference to a task",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := c.resolveTask(args[0])
				if err != nil {
					return err
				}
				a, err := c.app.Tasks.AddAttachment(t.ID, args[1], args[2])
				if err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "Attached %s (%s)\n", a.Name, a.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <task> <attachment-id>",
			Short: "Remove an attachment",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				t, err := c.resolveTask(args[0])
				if err != nil {
					return err
				}
				return c.app.Tasks.RemoveAttachment(t.ID, args[1])
			},
		},
	)

	return cmd
}

func (c *CLI) newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort <priority|category|date>",
		Short: "Select the sort field (reselect to flip the order)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := task.SortField(args[0])
			switch field {
			case task.SortByPriority, task.SortByCategory, task.SortByDate:
			default:
				return fmt.Errorf("unknown sort field: %s", args[0])
			}
			c.app.Tasks.SetSortPolicy(field)
			policy := c.app.Tasks.Policy()
			fmt.Fprintf(c.stdout, "Sorting by %s, %s\n", policy.Field, policy.Order)
			return nil
		},
	}
}

func (c *CLI) newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage the category set",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, cat := range c.app.Tasks.Categories() {
				fmt.Fprintln(c.stdout, cat)
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c.app.Tasks.AddCategory(args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <name>",
			Short: "Remove a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.app.Tasks.RemoveCategory(args[0])
			},
		},
	)

	return cmd
}
