// Package history keeps a linear undo/redo stack of full snapshots.
//
// Structural edits commit immediately. Continuous edits (drags) commit
// through a single debounce timer: every new debounced commit replaces the
// pending one, and only after the delay passes without another edit is the
// then-current state recorded. A burst of moves therefore becomes one undo
// step.
//
// Manager is not safe for concurrent use on its own. Owners that share it
// with a RealClock pass their mutex as Options.Guard; the timer callback
// acquires it before touching the stack, and every other method must be
// called with it held.
package history

import (
	"sync"
	"time"
)

// Defaults for Options.
const (
	DefaultMaxSize = 50
	DefaultDelay   = 500 * time.Millisecond
)

// Options configures a Manager.
type Options struct {
	// MaxSize caps the number of snapshots; the oldest is evicted first.
	MaxSize int
	// Delay is the quiet period before a debounced commit lands.
	Delay time.Duration
	// Clock schedules the debounce timer. Defaults to RealClock.
	Clock Clock
	// Guard is locked by the timer callback. Optional.
	Guard sync.Locker
	// OnCommit is called after every recorded snapshot.
	OnCommit func(index, size int, debounced bool)
}

// Manager is an undo/redo stack of snapshots of T.
type Manager[T any] struct {
	snapshots []T
	index     int
	clone     func(T) T
	opts      Options

	timer   Timer
	source  func() T
	pending bool
	gen     uint64
}

// New creates a manager whose first snapshot is initial.
func New[T any](initial T, clone func(T) T, opts Options) *Manager[T] {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	m := &Manager[T]{clone: clone, opts: opts}
	m.Reset(initial)
	return m
}

// Reset drops all history and any pending commit, keeping only initial.
func (m *Manager[T]) Reset(initial T) {
	m.cancel()
	m.snapshots = []T{m.clone(initial)}
	m.index = 0
}

// Commit records state immediately, truncating any redo branch. A pending
// debounced commit is dropped since state already reflects it; owners that
// want the drag as its own step call Flush first.
func (m *Manager[T]) Commit(state T) {
	m.cancel()
	m.push(state, false)
}

// CommitDebounced schedules a commit of current() after the quiet period,
// replacing any pending one.
func (m *Manager[T]) CommitDebounced(current func() T) {
	m.cancel()
	m.gen++
	gen := m.gen
	m.source = current
	m.pending = true
	m.timer = m.opts.Clock.AfterFunc(m.opts.Delay, func() { m.fire(gen) })
}

// Pending reports whether a debounced commit is waiting.
func (m *Manager[T]) Pending() bool {
	return m.pending
}

// Flush records a pending debounced commit now. It reports whether there
// was one.
func (m *Manager[T]) Flush() bool {
	if !m.pending {
		return false
	}
	source := m.source
	m.cancel()
	m.push(source(), true)
	return true
}

// Undo steps back one snapshot, flushing a pending commit first. It returns
// a copy of the snapshot now current.
func (m *Manager[T]) Undo() (T, bool) {
	m.Flush()
	if m.index == 0 {
		var zero T
		return zero, false
	}
	m.index--
	return m.clone(m.snapshots[m.index]), true
}

// Redo steps forward one snapshot.
func (m *Manager[T]) Redo() (T, bool) {
	m.Flush()
	if m.index >= len(m.snapshots)-1 {
		var zero T
		return zero, false
	}
	m.index++
	return m.clone(m.snapshots[m.index]), true
}

// CanUndo reports whether Undo would move. A pending commit counts.
func (m *Manager[T]) CanUndo() bool {
	return m.index > 0 || m.pending
}

// CanRedo reports whether Redo would move.
func (m *Manager[T]) CanRedo() bool {
	return !m.pending && m.index < len(m.snapshots)-1
}

// Len returns the number of recorded snapshots.
func (m *Manager[T]) Len() int {
	return len(m.snapshots)
}

// Index returns the position of the current snapshot.
func (m *Manager[T]) Index() int {
	return m.index
}

func (m *Manager[T]) push(state T, debounced bool) {
	m.snapshots = append(m.snapshots[:m.index+1], m.clone(state))
	if over := len(m.snapshots) - m.opts.MaxSize; over > 0 {
		m.snapshots = append([]T(nil), m.snapshots[over:]...)
	}
	m.index = len(m.snapshots) - 1
	if m.opts.OnCommit != nil {
		m.opts.OnCommit(m.index, len(m.snapshots), debounced)
	}
}

func (m *Manager[T]) cancel() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.pending = false
	m.source = nil
}

// fire runs on the clock's goroutine. A timer superseded between firing
// and acquiring the guard carries a stale generation and does nothing.
func (m *Manager[T]) fire(gen uint64) {
	if m.opts.Guard != nil {
		m.opts.Guard.Lock()
		defer m.opts.Guard.Unlock()
	}
	if !m.pending || gen != m.gen {
		return
	}
	m.Flush()
}
