package taskstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"todo/internal/task"
)

// isoMillis is the layout browsers emit for Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// record is the persisted form of a task.
type record struct {
	ID        float64 `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	CreatedAt string  `json:"createdAt"`
}

// Encode serializes tasks as a JSON array in collection order.
func Encode(tasks []task.Task) (string, error) {
	records := make([]record, len(tasks))
	for i, t := range tasks {
		records[i] = record{
			ID:        float64(t.ID),
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt.UTC().Format(isoMillis),
		}
	}
	// Text is stored raw, so keep <, > and & unescaped like JSON.stringify.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("failed to encode tasks: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Repairs counts the changes Decode made to stored entries.
type Repairs struct {
	// Renumbered entries had a fractional, duplicate or non-positive id
	// and were given a fresh one.
	Renumbered int
	// Dropped entries had no text, no valid createdAt or the wrong shape.
	Dropped int
}

// Changed reports whether any entry was renumbered or dropped.
func (r Repairs) Changed() bool {
	return r.Renumbered > 0 || r.Dropped > 0
}

// Decode parses a persisted collection.
// A blank value or JSON null yields an empty collection. Only a value
// that is not a JSON array is an error; bad entries are dropped and
// unusable ids are replaced, keeping collection order.
func Decode(s string) ([]task.Task, Repairs, error) {
	var repairs Repairs
	if strings.TrimSpace(s) == "" {
		return nil, repairs, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, repairs, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(raw))
	renumber := make([]bool, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	var maxID int64
	for _, msg := range raw {
		var r record
		if err := json.Unmarshal(msg, &r); err != nil || strings.TrimSpace(r.Text) == "" {
			repairs.Dropped++
			continue
		}
		createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			repairs.Dropped++
			continue
		}

		id, ok := wholeID(r.ID)
		if ok && seen[id] {
			ok = false
		}
		if ok {
			seen[id] = true
			maxID = max(maxID, id)
		}

		tasks = append(tasks, task.Task{
			ID:        id,
			Text:      r.Text,
			Completed: r.Completed,
			CreatedAt: createdAt,
		})
		renumber = append(renumber, !ok)
	}

	for i := range tasks {
		if renumber[i] {
			maxID++
			tasks[i].ID = maxID
			repairs.Renumbered++
		}
	}
	return tasks, repairs, nil
}

// wholeID converts a stored id to a task id if it is a positive integer.
func wholeID(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < 1 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
