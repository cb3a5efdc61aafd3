package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusquest/internal/config"
)

func (c *CLI) newConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Open a snapshot file and merge it into the live state",
		Long:  "Pick an existing snapshot file, smart-merge it with the current state\n(in-memory tasks win on conflict), and keep the file connected so every\nchange is mirrored to it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Reconciler.ConnectOpen(cmd.Context()); err != nil {
				return err
			}
			if c.app.Reconciler.Connected() {
				fmt.Fprintf(c.stdout, "Connected to %s\n", c.app.Reconciler.ConnectedRef())
			} else {
				fmt.Fprintln(c.stdout, "Cancelled")
			}
			return nil
		},
	}
}

func (c *CLI) newSaveAsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save-as",
		Short: "Save the current state to a new snapshot file and connect it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Reconciler.ConnectSave(cmd.Context()); err != nil {
				return err
			}
			if c.app.Reconciler.Connected() {
				fmt.Fprintf(c.stdout, "Saved and connected to %s\n", c.app.Reconciler.ConnectedRef())
			} else {
				fmt.Fprintln(c.stdout, "Cancelled")
			}
			return nil
		},
	}
}

func (c *CLI) newDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect the external snapshot file (keeps the file)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Reconciler.Disconnect()
			fmt.Fprintln(c.stdout, "Disconnected, running cache-only")
			return nil
		},
	}
}

func (c *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "sample",
		Short: "Print a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(c.stdout, config.GetSampleConfig())
			return nil
		},
	})

	return cmd
}
