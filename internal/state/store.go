package state

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/roach88/zenith/internal/model"
)

// Observer is notified after every changing transition, synchronously and
// in subscription order. Observers run while the store holds its write
// lock: they may read Snapshot but must not call Dispatch, Undo or Redo.
type Observer interface {
	Changed(revision int64, data model.AppData)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(revision int64, data model.AppData)

// Changed calls f.
func (f ObserverFunc) Changed(revision int64, data model.AppData) { f(revision, data) }

// Result reports what a dispatch did.
type Result struct {
	// ID is the id assigned by an Add action, empty otherwise.
	ID string

	// Changed is false when the action was a no-op.
	Changed bool

	// Revision is the store revision after the dispatch.
	Revision int64
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the id source for Add actions.
// Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		s.ids = g
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithHistoryLimit sets how many snapshots Undo can reach. Zero disables
// history. Default: DefaultHistoryLimit.
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		s.historyLimit = n
	}
}

type snapshot struct {
	revision int64
	data     model.AppData
}

type subscription struct {
	id  int
	obs Observer
}

// Store is the AppStore: the single source of truth for the current
// snapshot.
//
// Thread-safety model:
//   - Snapshot(), Revision(): safe from any goroutine, lock-free
//   - Dispatch(), Undo(), Redo(), Subscribe(): serialized by one mutex
//     (single writer)
type Store struct {
	mu           sync.Mutex
	current      atomic.Pointer[snapshot]
	clock        *Clock
	ids          IDGenerator
	logger       *slog.Logger
	historyLimit int
	history      *history
	observers    []subscription
	nextObsID    int
}

// New creates a store holding initial (normalized) at revision 0.
func New(initial model.AppData, opts ...Option) *Store {
	s := &Store{
		clock:        NewClock(),
		ids:          UUIDv7Generator{},
		logger:       slog.Default(),
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = newHistory(s.historyLimit)
	s.current.Store(&snapshot{data: initial.Normalize()})
	return s
}

// Snapshot returns the current document. Callers must treat it as
// read-only: its slices are shared with the store's history.
func (s *Store) Snapshot() model.AppData {
	return s.current.Load().data
}

// Revision returns the revision of the current snapshot.
func (s *Store) Revision() int64 {
	return s.current.Load().revision
}

// Dispatch validates act, applies it and notifies observers.
//
// An invalid payload (unknown enum value, negative transaction amount) is
// refused with an *ActionError and leaves the store untouched. Otherwise
// Dispatch never fails: transitions that reference missing entities are
// no-ops, reported by Result.Changed == false.
func (s *Store) Dispatch(act Action) (Result, error) {
	if act == nil {
		return Result{}, &ActionError{Code: ErrCodeInvalidAction, Message: "nil action"}
	}
	if err := validate(act); err != nil {
		s.logger.Warn("action refused", "action", act.Name(), "error", err)
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	out := Reduce(cur.data, act, s.ids)
	if !out.Changed {
		s.logger.Debug("action was a no-op", "action", act.Name(), "revision", cur.revision)
		return Result{Revision: cur.revision}, nil
	}

	s.history.record(cur.data)
	rev := s.commitLocked(out.Data)
	s.logger.Debug("action applied", "action", act.Name(), "revision", rev, "id", out.ID)
	return Result{ID: out.ID, Changed: true, Revision: rev}, nil
}

// Undo restores the snapshot before the latest transition. Returns false
// when there is nothing to undo.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.stepBack(s.current.Load().data)
	if !ok {
		return false
	}
	rev := s.commitLocked(prev)
	s.logger.Debug("undo", "revision", rev)
	return true
}

// Redo reapplies the latest undone snapshot. Returns false when there is
// nothing to redo. Any new dispatch clears the redo stack.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.history.stepForward(s.current.Load().data)
	if !ok {
		return false
	}
	rev := s.commitLocked(next)
	s.logger.Debug("redo", "revision", rev)
	return true
}

// HistoryDepth reports how many steps Undo and Redo can take.
func (s *Store) HistoryDepth() (undo, redo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.depths()
}

// Subscribe registers o and returns a function that unregisters it.
func (s *Store) Subscribe(o Observer) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, subscription{id: id, obs: o})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// commitLocked publishes data as the next revision and notifies observers.
// Caller must hold s.mu.
func (s *Store) commitLocked(data model.AppData) int64 {
	rev := s.clock.Next()
	s.current.Store(&snapshot{revision: rev, data: data})
	for _, sub := range s.observers {
		sub.obs.Changed(rev, data)
	}
	return rev
}
