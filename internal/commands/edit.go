package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/taskstore"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's text" }
func (c *EditCmd) Usage() string     { return "todo edit <id> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, store *taskstore.Store, args []string, out, errOut io.Writer) int {
	t, code := lookupTask(store, args, errOut)
	if code != exitcode.Success {
		return code
	}

	// Blank text cancels the edit
	if !store.Edit(t.ID, strings.Join(args[1:], " ")) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "unchanged")
		}
		return exitcode.Success
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
