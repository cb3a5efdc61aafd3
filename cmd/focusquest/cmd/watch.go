package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"focusquest/internal/shutdown"
	"focusquest/internal/utils"
	"focusquest/internal/watcher"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the connected snapshot file and merge outside edits",
		Long:  "Run until interrupted, re-merging the connected snapshot file whenever\nanother program writes it. Requires the native backend and a connected file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.app.Reconciler.Connected() {
				return fmt.Errorf("no snapshot file connected, run connect first")
			}
			if c.app.Backend.Name() != "native" {
				return fmt.Errorf("watch requires the native backend")
			}
			path := c.app.Reconciler.ConnectedRef()

			mgr := shutdown.NewManager()
			mgr.HandleSignals()

			w, err := watcher.New(path, func() {
				if err := c.app.Reconciler.Refresh(context.Background()); err != nil {
					utils.Warnf("refresh after file change: %v", err)
					return
				}
				fmt.Fprintf(c.stdout, "Merged outside changes from %s\n", path)
			})
			if err != nil {
				return err
			}
			mgr.Register("watcher", func(context.Context) error {
				w.Stop()
				return nil
			})

			fmt.Fprintf(c.stdout, "Watching %s (Ctrl-C to stop)\n", path)
			return mgr.Wait(shutdown.DefaultGracePeriod)
		},
	}
}
