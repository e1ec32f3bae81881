package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/taskstore"
	"todo/internal/tui"
)

func init() {
	Register(&TuiCmd{})
}

// TuiCmd implements the tui command.
type TuiCmd struct {
	opts []tea.ProgramOption
}

// SetProgramOptions replaces the program options (for testing).
func (c *TuiCmd) SetProgramOptions(opts ...tea.ProgramOption) {
	c.opts = opts
}

func (c *TuiCmd) Name() string      { return "tui" }
func (c *TuiCmd) Aliases() []string { return nil }
func (c *TuiCmd) Synopsis() string  { return "Interactive terminal UI" }
func (c *TuiCmd) Usage() string     { return "todo tui" }
func (c *TuiCmd) NeedsStore() bool  { return true }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, store *taskstore.Store, args []string, out, errOut io.Writer) int {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.opts == nil {
		opts = append(opts, tea.WithAltScreen())
	} else {
		opts = append(opts, c.opts...)
	}

	p := tea.NewProgram(tui.New(store), opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
