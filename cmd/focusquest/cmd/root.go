// Package cmd implements the focusquest command line interface.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"focusquest/internal/app"
	"focusquest/internal/config"
	"focusquest/internal/task"
	"focusquest/internal/utils"
)

// Version is set at build time
var Version = "dev"

// CLI carries the per-invocation state shared by all subcommands.
type CLI struct {
	stdout io.Writer
	stderr io.Writer

	cfgPath    string
	cachePath  string
	backend    string
	sandboxDir string
	verbose    bool
	yes        bool

	app *app.App
}

// Execute runs the CLI with the given arguments and IO writers.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRoot(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// NewRoot creates the root command with injectable IO.
func NewRoot(stdout, stderr io.Writer) *cobra.Command {
	cli := &CLI{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "focusquest",
		Short:         "A pomodoro task manager with levels, coins and achievements",
		Long:          "focusquest tracks tasks and focus sessions, awards experience and coins,\nand persists everything to a local cache plus an optional shared snapshot file.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return cli.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runList(cmd)
		},
	}

	root.PersistentFlags().StringVar(&cli.cfgPath, "config", "", "config file path")
	root.PersistentFlags().StringVar(&cli.cachePath, "cache", "", "cache database path (testing)")
	root.PersistentFlags().StringVar(&cli.backend, "backend", "", "file backend: native or sandbox")
	root.PersistentFlags().StringVar(&cli.sandboxDir, "sandbox-dir", "", "root directory for the sandbox backend")
	root.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().BoolVarP(&cli.yes, "yes", "y", false, "assume yes, never prompt")

	root.AddCommand(
		cli.newAddCmd(),
		cli.newListCmd(),
		cli.newDoneCmd(),
		cli.newUpdateCmd(),
		cli.newDeleteCmd(),
		cli.newFocusCmd(),
		cli.newSubtaskCmd(),
		cli.newAttachCmd(),
		cli.newSortCmd(),
		cli.newCategoryCmd(),
		cli.newSessionCmd(),
		cli.newTimerCmd(),
		cli.newProfileCmd(),
		cli.newAchievementsCmd(),
		cli.newShopCmd(),
		cli.newBuyCmd(),
		cli.newUseCmd(),
		cli.newAgendaCmd(),
		cli.newHistoryCmd(),
		cli.newExportCmd(),
		cli.newImportCmd(),
		cli.newConnectCmd(),
		cli.newSaveAsCmd(),
		cli.newDisconnectCmd(),
		cli.newWatchCmd(),
		cli.newConfigCmd(),
	)

	return root
}

// setup loads the configuration, assembles the app, and restores state.
func (c *CLI) setup(cmd *cobra.Command) error {
	utils.SetVerboseMode(c.verbose)

	path := c.cfgPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if c.backend != "" {
		cfg.Backend = c.backend
	}
	if c.sandboxDir != "" {
		cfg.SandboxDir = c.sandboxDir
	}
	if cfg.Logging.Verbose {
		utils.SetVerboseMode(true)
	}

	a, err := app.New(app.Options{
		Config:    cfg,
		PickerIn:  cmd.InOrStdin(),
		PickerOut: c.stdout,
		CachePath: c.cachePath,
	})
	if err != nil {
		return err
	}
	c.app = a

	return a.Startup(cmd.Context())
}

// teardown flushes pending writes and releases the cache.
func (c *CLI) teardown() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

// resolveTask maps a user-supplied reference to a task: exact id, unique
// id prefix, or exact text.
func (c *CLI) resolveTask(ref string) (task.Task, error) {
	tasks := c.app.Tasks.Tasks()

	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}

	var prefixMatches []task.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			prefixMatches = append(prefixMatches, t)
		}
	}
	if len(prefixMatches) == 1 {
		return prefixMatches[0], nil
	}
	if len(prefixMatches) > 1 {
		return task.Task{}, fmt.Errorf("ambiguous task reference: %s", ref)
	}

	for _, t := range tasks {
		if t.Text == ref {
			return t, nil
		}
	}
	return task.Task{}, fmt.Errorf("no task matches %q", ref)
}
