// Package taskstore owns the task collection and the active filter, and
// persists the collection through a storage.Adapter after every mutation.
//
// A Store is not safe for concurrent use. Presentation layers drive it
// from a single goroutine and re-render from its query methods after each
// mutating call.
package taskstore

import (
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"todo/internal/logging"
	"todo/internal/storage"
	"todo/internal/task"
)

// DefaultKey is the storage key holding the whole collection.
const DefaultKey = "todoTasks"

// Confirmer is asked before a destructive bulk operation.
// count is the number of tasks that would be removed.
type Confirmer func(count int) bool

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for load and save diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(s *Store) { s.log = log.NewHelper(logger) }
}

// Store holds the ordered task collection, most recent first.
type Store struct {
	adapter storage.Adapter
	key     string
	now     func() time.Time
	log     *log.Helper

	tasks  []task.Task
	filter task.Filter
	nextID int64
}

// New creates an empty Store over adapter. Call Load to read persisted state.
func New(adapter storage.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		key:     DefaultKey,
		now:     time.Now,
		log:     log.NewHelper(logging.Discard()),
		filter:  task.FilterAll,
		nextID:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one.
// Missing, unreadable or unparsable state yields an empty collection.
// Entries with unusable ids get fresh ones; invalid entries are skipped.
func (s *Store) Load() {
	s.tasks = nil
	s.nextID = 1

	value, ok, err := s.adapter.Read(s.key)
	if err != nil {
		s.log.Warnf("failed to read %s, starting empty: %v", s.key, err)
		return
	}
	if !ok {
		s.log.Debugf("no saved tasks under %s", s.key)
		return
	}

	tasks, repairs, err := Decode(value)
	if err != nil {
		s.log.Warnf("ignoring malformed %s: %v", s.key, err)
		return
	}
	if repairs.Changed() {
		s.log.Warnf("repaired %s: renumbered %d tasks, dropped %d invalid entries",
			s.key, repairs.Renumbered, repairs.Dropped)
	}

	s.tasks = tasks
	for _, t := range tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	s.log.Debugf("loaded %d tasks from %s", len(tasks), s.key)
}

// Add creates a task from text and puts it first.
// Returns false without creating anything if text is blank.
func (s *Store) Add(text string) (task.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return task.Task{}, false
	}

	t := task.Task{
		ID:        s.nextID,
		Text:      text,
		Completed: false,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	s.nextID++
	s.tasks = slices.Insert(s.tasks, 0, t)
	s.save()
	return t, true
}

// Toggle flips the completed flag of task id.
func (s *Store) Toggle(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.save()
	return true
}

// Edit replaces the text of task id.
// Blank text cancels the edit and leaves the task untouched.
func (s *Store) Edit(id int64, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Text = text
	s.save()
	return true
}

// Delete removes task id.
func (s *Store) Delete(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.save()
	return true
}

// ClearCompleted removes every completed task once confirm agrees.
// confirm is not called when nothing is completed; a nil confirm refuses.
// Returns the number of tasks removed.
func (s *Store) ClearCompleted(confirm Confirmer) int {
	count := s.completedCount()
	if count == 0 {
		return 0
	}
	if confirm == nil || !confirm(count) {
		return 0
	}
	s.tasks = slices.DeleteFunc(s.tasks, func(t task.Task) bool {
		return t.Completed
	})
	s.save()
	return count
}

// SetFilter changes the view filter. It is never persisted.
func (s *Store) SetFilter(f task.Filter) error {
	if !f.Valid() {
		return task.ErrUnknownFilter
	}
	s.filter = f
	return nil
}

// Filter returns the current view filter.
func (s *Store) Filter() task.Filter {
	return s.filter
}

// FilteredView yields the tasks visible under the current filter, in
// collection order. Each range over the result reads the current state.
func (s *Store) FilteredView() iter.Seq[task.Task] {
	return func(yield func(task.Task) bool) {
		for _, t := range s.tasks {
			if !s.filter.Match(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// ActiveCount returns the number of tasks not yet completed.
func (s *Store) ActiveCount() int {
	return len(s.tasks) - s.completedCount()
}

// HasCompleted reports whether any task is completed.
func (s *Store) HasCompleted() bool {
	return slices.ContainsFunc(s.tasks, func(t task.Task) bool {
		return t.Completed
	})
}

// Get returns task id.
func (s *Store) Get(id int64) (task.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// Tasks returns a copy of the whole collection, ignoring the filter.
func (s *Store) Tasks() []task.Task {
	return slices.Clone(s.tasks)
}

// Len returns the collection size.
func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.tasks, func(t task.Task) bool {
		return t.ID == id
	})
}

func (s *Store) completedCount() int {
	n := 0
	for _, t := range s.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// save overwrites the persisted collection. Failures are logged only.
func (s *Store) save() {
	value, err := Encode(s.tasks)
	if err != nil {
		s.log.Errorf("failed to encode tasks: %v", err)
		return
	}
	if err := s.adapter.Write(s.key, value); err != nil {
		s.log.Warnf("failed to save tasks: %v", err)
	}
}
