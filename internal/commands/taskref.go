package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"todo/internal/exitcode"
	"todo/internal/task"
	"todo/internal/taskstore"
)

// ErrTaskRefRequired indicates no task id was provided.
var ErrTaskRefRequired = errors.New("task id required")

// ParseTaskID parses the task id from the first arg.
// Accepts "7" and "#7"; the id must be positive.
func ParseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}

	ref := strings.TrimPrefix(args[0], "#")
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}

// lookupTask parses the id in args and checks it exists in store.
// On failure it reports to errOut and returns a non-zero exit code.
func lookupTask(store *taskstore.Store, args []string, errOut io.Writer) (task.Task, int) {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, exitcode.UserError
	}

	t, ok := store.Get(id)
	if !ok {
		fmt.Fprintf(errOut, "error: task not found: %d\n", id)
		return task.Task{}, exitcode.UserError
	}
	return t, exitcode.Success
}
