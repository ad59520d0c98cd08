package editor

// Undo restores the previous snapshot. A pending drag commit is recorded
// first, so the drag itself is what gets undone. It reports whether a step
// was taken.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.layout = l
	e.pruneSelection()
	return true
}

// Redo reapplies the next snapshot.
func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.layout = l
	e.pruneSelection()
	return true
}

// CanUndo reports whether Undo would take a step.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo() || e.history.Pending()
}

// CanRedo reports whether Redo would take a step.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo() && !e.history.Pending()
}

// Flush records a pending drag commit now.
func (e *Editor) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Flush()
}

// HistoryLen returns the number of recorded snapshots.
func (e *Editor) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Len()
}
