package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/taskstore"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command.
// Removing completed tasks needs an explicit yes, either from --yes or
// from the prompt.
type ClearCmd struct {
	yes bool
	in  io.Reader
}

// SetInput sets the prompt input (for testing).
func (c *ClearCmd) SetInput(r io.Reader) {
	c.in = r
}

// SetYes skips the prompt (for testing).
func (c *ClearCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Delete all completed tasks" }
func (c *ClearCmd) Usage() string     { return "todo clear [--yes]" }
func (c *ClearCmd) NeedsStore() bool  { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, store *taskstore.Store, args []string, out, errOut io.Writer) int {
	if !store.HasCompleted() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "nothing to clear")
		}
		return exitcode.Success
	}

	removed := store.ClearCompleted(c.confirm(errOut))
	if !cfg.Quiet {
		if removed == 0 {
			fmt.Fprintln(out, "aborted")
		} else {
			fmt.Fprintf(out, "cleared %d\n", removed)
		}
	}
	return exitcode.Success
}

// confirm returns a Confirmer that asks on errOut and reads one line.
func (c *ClearCmd) confirm(errOut io.Writer) taskstore.Confirmer {
	if c.yes {
		return func(int) bool { return true }
	}
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	return func(count int) bool {
		fmt.Fprintf(errOut, "Delete %d completed task(s)? [y/N] ", count)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(errOut)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
