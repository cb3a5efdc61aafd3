package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"focusquest/internal/markdown"
)

func (c *CLI) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export tasks as a markdown checklist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := markdown.FormatTasks(c.app.Tasks.SortedView())
			if len(args) == 0 {
				fmt.Fprint(c.stdout, out)
				return nil
			}
			if err := os.WriteFile(args[0], []byte(out), 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(c.stdout, "Exported %d tasks to %s\n", len(c.app.Tasks.Tasks()), args[0])
			return nil
		},
	}
}

func (c *CLI) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import tasks from a markdown checklist",
		Long:  "Import unchecked checklist items as new tasks. Checked items are\nskipped so imports never award retroactive experience.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			entries, err := markdown.ParseTasks(string(data))
			if err != nil {
				return err
			}

			added, skipped := 0, 0
			for _, e := range entries {
				if e.Completed {
					skipped++
					continue
				}
				t, err := c.app.Tasks.Add(e.Draft)
				if err != nil {
					return fmt.Errorf("import %q: %w", e.Draft.Text, err)
				}
				for _, sub := range e.Subtasks {
					s, err := c.app.Tasks.AddSubtask(t.ID, sub.Text)
					if err != nil {
						return err
					}
					if sub.Completed {
						if err := c.app.Tasks.ToggleSubtask(t.ID, s.ID); err != nil {
							return err
						}
					}
				}
				added++
			}

			fmt.Fprintf(c.stdout, "Imported %d tasks", added)
			if skipped > 0 {
				fmt.Fprintf(c.stdout, " (%d completed items skipped)", skipped)
			}
			fmt.Fprintln(c.stdout)
			return nil
		},
	}
}
