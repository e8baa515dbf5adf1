// Package selection maintains the set of offered time slots through discrete
// toggles and continuous paint gestures over the day/hour grid.
package selection

import (
	"sync"

	"github.com/bavobbr/dmon-scheduler/internal/domain"
)

// PaintMode is the effect a paint gesture applies to the cells it crosses.
type PaintMode string

const (
	PaintAdd    PaintMode = "add"
	PaintRemove PaintMode = "remove"
)

// Editor turns toggle and drag input into a slot collection. The collection
// keeps insertion order, matching what a user built up cell by cell. Every
// accepted change emits the full updated collection through onChange.
type Editor struct {
	mu       sync.Mutex
	slots    []domain.TimeSlot
	selected map[string]struct{}
	painting bool
	mode     PaintMode
	onChange func([]domain.TimeSlot)
}

// NewEditor builds an editor. onChange may be nil; when set it is invoked
// under the editor's lock, once per accepted change.
func NewEditor(onChange func([]domain.TimeSlot)) *Editor {
	return &Editor{
		selected: make(map[string]struct{}),
		onChange: onChange,
	}
}

// Slots returns a copy of the current selection in insertion order.
func (e *Editor) Slots() []domain.TimeSlot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copySlots()
}

// Selected reports whether the (day, hour) cell is currently selected.
func (e *Editor) Selected(day domain.DayOfWeek, hour int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.selected[domain.SlotID(day, hour)]
	return ok
}

// Count returns the number of selected slots.
func (e *Editor) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.slots)
}

// Toggle flips the (day, hour) cell: selected slots are removed, unselected
// cells gain a freshly constructed slot. Toggling twice restores membership.
func (e *Editor) Toggle(day domain.DayOfWeek, hour int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.toggleLocked(day, hour)
	e.emitLocked()
}

// BeginPaint starts a drag gesture on a cell. The mode is inferred from the
// start cell's state (selected cells start a removing drag), and the start
// cell itself is toggled immediately.
func (e *Editor) BeginPaint(day domain.DayOfWeek, hour int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.selected[domain.SlotID(day, hour)]; ok {
		e.mode = PaintRemove
	} else {
		e.mode = PaintAdd
	}
	e.painting = true
	e.toggleLocked(day, hour)
	e.emitLocked()
}

// PaintCell applies the active gesture to a cell the pointer entered. Cells
// already matching the gesture's target state are left alone, so re-entering
// a cell during one gesture is a no-op. Ignored when no gesture is active.
func (e *Editor) PaintCell(day domain.DayOfWeek, hour int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.painting {
		return
	}
	id := domain.SlotID(day, hour)
	_, has := e.selected[id]
	if (e.mode == PaintAdd && has) || (e.mode == PaintRemove && !has) {
		return
	}
	e.toggleLocked(day, hour)
	e.emitLocked()
}

// EndPaint finishes the active gesture. Safe to call when idle.
func (e *Editor) EndPaint() {
	e.mu.Lock()
	e.painting = false
	e.mu.Unlock()
}

// Painting reports whether a drag gesture is in progress.
func (e *Editor) Painting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.painting
}

// Replace swaps the whole selection, used by dataset import. Any active
// gesture is abandoned. The new collection is emitted like any other change.
func (e *Editor) Replace(slots []domain.TimeSlot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.painting = false
	e.slots = make([]domain.TimeSlot, 0, len(slots))
	e.selected = make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if _, dup := e.selected[s.ID]; dup {
			continue
		}
		e.slots = append(e.slots, s)
		e.selected[s.ID] = struct{}{}
	}
	e.emitLocked()
}

func (e *Editor) toggleLocked(day domain.DayOfWeek, hour int) {
	id := domain.SlotID(day, hour)
	if _, ok := e.selected[id]; ok {
		delete(e.selected, id)
		for i, s := range e.slots {
			if s.ID == id {
				e.slots = append(e.slots[:i], e.slots[i+1:]...)
				break
			}
		}
		return
	}
	e.selected[id] = struct{}{}
	e.slots = append(e.slots, domain.NewTimeSlot(day, hour))
}

func (e *Editor) copySlots() []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(e.slots))
	copy(out, e.slots)
	return out
}

// emitLocked delivers the updated collection while still holding the mutex,
// so concurrent edits cannot commit out of order. The callback must not call
// back into the editor.
func (e *Editor) emitLocked() {
	if e.onChange != nil {
		e.onChange(e.copySlots())
	}
}
