/*
Copyright © 2025 changheonshin
*/
package organizer

import "time"

// Operation records one executed move so it can be reversed. CategoryPath
// is the folder (relative to the source directory) the file was filed
// under.
type Operation struct {
	OriginalPath string
	FinalPath    string
	CategoryPath string
	Timestamp    time.Time
}

// opHistory is a linear undo/redo history. Operations live on the undo
// stack; undoing moves them to the redo stack, and any new operation
// discards the redo stack.
type opHistory struct {
	undo []Operation
	redo []Operation
}

func (h *opHistory) push(op Operation) {
	h.undo = append(h.undo, op)
	h.redo = h.redo[:0]
}

func (h *opHistory) popUndo() (Operation, bool) {
	if len(h.undo) == 0 {
		return Operation{}, false
	}
	op := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return op, true
}

func (h *opHistory) popRedo() (Operation, bool) {
	if len(h.redo) == 0 {
		return Operation{}, false
	}
	op := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return op, true
}

// restore puts an operation back where it came from after a failed
// reversal, so the history stays consistent with the filesystem.
func (h *opHistory) restoreUndo(op Operation) { h.undo = append(h.undo, op) }
func (h *opHistory) restoreRedo(op Operation) { h.redo = append(h.redo, op) }
