package state

import "github.com/roach88/zenith/internal/model"

// DefaultHistoryLimit is how many past snapshots Undo can step back through.
const DefaultHistoryLimit = 50

// history keeps previous snapshots for undo and undone snapshots for redo.
// Snapshots are immutable, so keeping them costs only the slices that
// actually changed between revisions.
type history struct {
	limit int
	undo  []model.AppData
	redo  []model.AppData
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

// record saves prev before a new transition and drops the redo stack.
func (h *history) record(prev model.AppData) {
	h.redo = nil
	if h.limit <= 0 {
		return
	}
	h.undo = append(h.undo, prev)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
}

// stepBack pops the latest undo snapshot and pushes cur for redo.
func (h *history) stepBack(cur model.AppData) (model.AppData, bool) {
	if len(h.undo) == 0 {
		return model.AppData{}, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cur)
	return prev, true
}

// stepForward pops the latest redo snapshot and pushes cur for undo.
func (h *history) stepForward(cur model.AppData) (model.AppData, bool) {
	if len(h.redo) == 0 {
		return model.AppData{}, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cur)
	return next, true
}

func (h *history) depths() (undo, redo int) {
	return len(h.undo), len(h.redo)
}
