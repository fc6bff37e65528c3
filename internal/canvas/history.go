package canvas

import "github.com/sticktoon/badge-engine/pkg/badgeformat"

// History holds linear undo/redo stacks of full element-set snapshots.
// Snapshot-based rather than command-based: element counts stay in the
// low tens, so copying the whole set per checkpoint is cheap.
type History struct {
	undo [][]badgeformat.Element
	redo [][]badgeformat.Element
}

// Checkpoint pushes a deep copy of the current element set onto the undo
// stack and clears the redo stack. Linear history: there is no branching
// redo once a new checkpoint lands.
func (h *History) Checkpoint(current []badgeformat.Element) {
	h.undo = append(h.undo, badgeformat.CloneElements(current))
	h.redo = nil
}

// Undo pops the top undo snapshot, stashing the current set on the redo
// stack. Returns the restored set, or false if there is nothing to undo.
func (h *History) Undo(current []badgeformat.Element) ([]badgeformat.Element, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}

	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, badgeformat.CloneElements(current))
	return top, true
}

// Redo reverses the most recent Undo.
func (h *History) Redo(current []badgeformat.Element) ([]badgeformat.Element, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}

	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, badgeformat.CloneElements(current))
	return top, true
}

// UndoDepth returns the number of undoable snapshots.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of redoable snapshots.
func (h *History) RedoDepth() int { return len(h.redo) }
