package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/task"
	"todo/internal/taskstore"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list --filter <name>`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(name string) {
	c.filter = name
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todo list [--filter all|active|completed]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(task.FilterAll), "")
	fs.StringVar(&c.filter, "f", string(task.FilterAll), "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, store *taskstore.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	name := c.filter
	if name == "" {
		name = string(task.FilterAll)
	}
	filter, err := task.ParseFilter(name)
	if err != nil {
		fmt.Fprintf(errOut, "error: unknown filter: %s\n", name)
		return exitcode.UserError
	}
	if err := store.SetFilter(filter); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	shown := 0
	for t := range store.FilteredView() {
		output.FormatTask(out, t)
		shown++
	}

	if shown == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	if store.Len() > 0 {
		output.FormatCounter(out, store.ActiveCount())
	}
	return exitcode.Success
}
