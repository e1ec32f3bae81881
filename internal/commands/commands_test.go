package commands_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/task"
	"todo/internal/taskstore"
	"todo/internal/testutil"
)

// newStore returns a loaded store with the given tasks added in order,
// so the last one listed is shown first.
func newStore(t *testing.T, texts ...string) (*taskstore.Store, *testutil.FakeAdapter) {
	t.Helper()
	adapter := testutil.NewFakeAdapter()
	clock := func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	store := taskstore.New(adapter, taskstore.WithClock(clock))
	store.Load()
	for _, text := range texts {
		if _, ok := store.Add(text); !ok {
			t.Fatalf("failed to add %q", text)
		}
	}
	return store, adapter
}

// runCommand is a helper to run a command against a store.
func runCommand(t *testing.T, cmd commands.Command, store *taskstore.Store, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, store, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, _, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	testutil.GoldenString(t, "help", stdout)
}

func TestHelpMentionsEveryCommand(t *testing.T) {
	stdout, _, _ := runCommand(t, &commands.HelpCmd{}, nil, nil, false)
	for _, cmd := range commands.DefaultRegistry.All() {
		if !strings.Contains(stdout, "todo "+cmd.Name()) {
			t.Errorf("help output does not mention %q", cmd.Name())
		}
	}
}

// Tests for list command
func TestListCommand_All(t *testing.T) {
	store, _ := newStore(t, "buy milk", "call mom", "write report")
	store.Toggle(2)

	cmd := &commands.ListCmd{}
	cmd.SetFilter("all")
	stdout, stderr, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_all", stdout)
}

func TestListCommand_Active(t *testing.T) {
	store, _ := newStore(t, "buy milk", "call mom", "write report")
	store.Toggle(2)

	cmd := &commands.ListCmd{}
	cmd.SetFilter("active")
	stdout, _, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "   3  [ ] write report\n   1  [ ] buy milk\n2 tasks remaining\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Completed(t *testing.T) {
	store, _ := newStore(t, "buy milk", "call mom")
	store.Toggle(2)

	cmd := &commands.ListCmd{}
	cmd.SetFilter("completed")
	stdout, _, _ := runCommand(t, cmd, store, nil, false)

	expected := "   2  [x] call mom\n1 task remaining\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_FilterMatchesNothing(t *testing.T) {
	store, _ := newStore(t, "buy milk")

	cmd := &commands.ListCmd{}
	cmd.SetFilter("completed")
	stdout, _, _ := runCommand(t, cmd, store, nil, false)

	expected := "no tasks found\n1 task remaining\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	store, _ := newStore(t)

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected %q, got %q", "no tasks found\n", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	store, _ := newStore(t)

	cmd := &commands.ListCmd{}
	stdout, _, _ := runCommand(t, cmd, store, nil, true)

	// Quiet mode should suppress "no tasks found"
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_UnknownFilter(t *testing.T) {
	store, _ := newStore(t, "buy milk")

	cmd := &commands.ListCmd{}
	cmd.SetFilter("done")
	_, stderr, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown filter: done\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if store.Filter() != task.FilterAll {
		t.Errorf("filter changed to %q", store.Filter())
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	store, adapter := newStore(t, "first")

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, store, []string{"buy", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "added 2\n" {
		t.Errorf("expected %q, got %q", "added 2\n", stdout)
	}

	tasks := store.Tasks()
	if tasks[0].Text != "buy milk" {
		t.Errorf("expected new task first, got %q", tasks[0].Text)
	}
	if adapter.Writes() != 2 {
		t.Errorf("expected 2 writes, got %d", adapter.Writes())
	}
}

func TestAddCommand_Blank(t *testing.T) {
	for _, args := range [][]string{nil, {"   "}, {"", " "}} {
		store, adapter := newStore(t)

		_, stderr, code := runCommand(t, &commands.AddCmd{}, store, args, false)

		if code != exitcode.UserError {
			t.Errorf("args %q: expected exit code %d, got %d", args, exitcode.UserError, code)
		}
		if stderr != "error: text required\n" {
			t.Errorf("args %q: unexpected stderr %q", args, stderr)
		}
		if store.Len() != 0 || adapter.Writes() != 0 {
			t.Errorf("args %q: blank add must not create or persist", args)
		}
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	store, _ := newStore(t)

	stdout, _, code := runCommand(t, &commands.AddCmd{}, store, []string{"task"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

// Tests for done command
func TestDoneCommand_TogglesTwice(t *testing.T) {
	store, _ := newStore(t, "buy milk")

	stdout, _, code := runCommand(t, &commands.DoneCmd{}, store, []string{"1"}, false)
	if code != exitcode.Success || stdout != "ok\n" {
		t.Fatalf("unexpected result %d %q", code, stdout)
	}
	if got, _ := store.Get(1); !got.Completed {
		t.Error("expected task to be completed")
	}

	runCommand(t, &commands.DoneCmd{}, store, []string{"#1"}, false)
	if got, _ := store.Get(1); got.Completed {
		t.Error("expected task to be reopened")
	}
}

func TestDoneCommand_NotFound(t *testing.T) {
	store, adapter := newStore(t, "buy milk")

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, store, []string{"9"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task not found: 9\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if adapter.Writes() != 1 {
		t.Errorf("expected no extra writes, got %d", adapter.Writes())
	}
}

func TestDoneCommand_NoRef(t *testing.T) {
	store, _ := newStore(t, "buy milk")

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, store, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task id required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for edit command
func TestEditCommand(t *testing.T) {
	store, _ := newStore(t, "buy milk")

	stdout, _, code := runCommand(t, &commands.EditCmd{}, store, []string{"1", "buy", "oat", "milk"}, false)

	if code != exitcode.Success || stdout != "ok\n" {
		t.Fatalf("unexpected result %d %q", code, stdout)
	}
	if got, _ := store.Get(1); got.Text != "buy oat milk" {
		t.Errorf("expected edited text, got %q", got.Text)
	}
}

func TestEditCommand_BlankIsCancel(t *testing.T) {
	store, adapter := newStore(t, "buy milk")

	stdout, _, code := runCommand(t, &commands.EditCmd{}, store, []string{"1", "  "}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "unchanged\n" {
		t.Errorf("expected %q, got %q", "unchanged\n", stdout)
	}
	if got, _ := store.Get(1); got.Text != "buy milk" {
		t.Errorf("expected text unchanged, got %q", got.Text)
	}
	if adapter.Writes() != 1 {
		t.Errorf("cancelled edit must not persist, got %d writes", adapter.Writes())
	}
}

func TestEditCommand_InvalidRef(t *testing.T) {
	store, _ := newStore(t, "buy milk")

	_, stderr, code := runCommand(t, &commands.EditCmd{}, store, []string{"abc", "text"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid task id: abc\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	store, _ := newStore(t, "a", "b", "c")

	stdout, _, code := runCommand(t, &commands.RmCmd{}, store, []string{"2"}, false)

	if code != exitcode.Success || stdout != "ok\n" {
		t.Fatalf("unexpected result %d %q", code, stdout)
	}
	var texts []string
	for _, tk := range store.Tasks() {
		texts = append(texts, tk.Text)
	}
	if strings.Join(texts, ",") != "c,a" {
		t.Errorf("expected c,a got %v", texts)
	}
}

func TestRmCommand_NotFound(t *testing.T) {
	store, _ := newStore(t, "a")

	_, stderr, code := runCommand(t, &commands.RmCmd{}, store, []string{"42"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task not found: 42\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if store.Len() != 1 {
		t.Errorf("expected collection unchanged")
	}
}

// Tests for clear command
func TestClearCommand_NothingToClear(t *testing.T) {
	store, _ := newStore(t, "a")

	cmd := &commands.ClearCmd{}
	cmd.SetInput(strings.NewReader("y\n"))
	stdout, stderr, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "nothing to clear\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if stderr != "" {
		t.Errorf("no prompt expected, got %q", stderr)
	}
}

func TestClearCommand_Confirmed(t *testing.T) {
	store, _ := newStore(t, "a", "b", "c")
	store.Toggle(1)
	store.Toggle(3)

	cmd := &commands.ClearCmd{}
	cmd.SetInput(strings.NewReader("yes\n"))
	stdout, stderr, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "Delete 2 completed task(s)? [y/N] " {
		t.Errorf("unexpected prompt %q", stderr)
	}
	if stdout != "cleared 2\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if store.Len() != 1 || store.HasCompleted() {
		t.Errorf("expected only the active task to remain")
	}
}

func TestClearCommand_Declined(t *testing.T) {
	for _, answer := range []string{"n\n", "\n", "maybe\n", ""} {
		store, adapter := newStore(t, "a")
		store.Toggle(1)
		writes := adapter.Writes()

		cmd := &commands.ClearCmd{}
		cmd.SetInput(strings.NewReader(answer))
		stdout, _, code := runCommand(t, cmd, store, nil, false)

		if code != exitcode.Success {
			t.Errorf("answer %q: expected exit code %d, got %d", answer, exitcode.Success, code)
		}
		if stdout != "aborted\n" {
			t.Errorf("answer %q: unexpected stdout %q", answer, stdout)
		}
		if store.Len() != 1 || adapter.Writes() != writes {
			t.Errorf("answer %q: declined clear must not change anything", answer)
		}
	}
}

func TestClearCommand_Yes(t *testing.T) {
	store, _ := newStore(t, "a")
	store.Toggle(1)

	cmd := &commands.ClearCmd{}
	cmd.SetYes(true)
	stdout, stderr, _ := runCommand(t, cmd, store, nil, false)

	if stderr != "" {
		t.Errorf("--yes must not prompt, got %q", stderr)
	}
	if stdout != "cleared 1\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

// Tests for tui command
func TestTuiCommand_QuitKey(t *testing.T) {
	store, adapter := newStore(t, "buy milk")

	cmd := &commands.TuiCmd{}
	cmd.SetProgramOptions(
		tea.WithInput(strings.NewReader("q")),
		tea.WithOutput(io.Discard),
	)
	_, stderr, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d: %s", exitcode.Success, code, stderr)
	}
	if store.Len() != 1 || adapter.Writes() != 1 {
		t.Error("quitting must not change the store")
	}
}
