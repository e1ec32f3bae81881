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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todo add <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, store *taskstore.Store, args []string, out, errOut io.Writer) int {
	// Join args to form the text; the store trims it
	added, ok := store.Add(strings.Join(args, " "))
	if !ok {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "added %d\n", added.ID)
	}
	return exitcode.Success
}
