// Package viewmanager implements a doubly-linked list of Views:
// creation/closing/cycling with a max of 10 views, the first (main) view
// never closable. Closing renumbers the remaining views' display names.
package viewmanager

import (
	"fmt"

	"github.com/grailbio/dsview/internal/view"
)

// MaxViews is the hard cap on concurrently open views.
const MaxViews = 10

// Manager owns the view list and the current pointer.
type Manager struct {
	head    *view.View
	current *view.View
	count   int
}

// New creates a Manager whose sole view is main (the non-closable head).
func New(main *view.View) *Manager {
	m := &Manager{head: main, current: main, count: 1}
	m.renumber()
	return m
}

// Current returns the active view.
func (m *Manager) Current() *view.View { return m.current }

// Count returns the number of open views.
func (m *Manager) Count() int { return m.count }

// AddView inserts v immediately after current and switches to it. Returns
// false if the manager is already at MaxViews.
func (m *Manager) AddView(v *view.View) bool {
	if m.count >= MaxViews {
		return false
	}
	v.Prev = m.current
	v.Next = m.current.Next
	if m.current.Next != nil {
		m.current.Next.Prev = v
	}
	m.current.Next = v
	m.count++
	m.current = v
	m.renumber()
	return true
}

// CloseCurrent closes the current view, refusing if it's the main (head)
// view. Returns false if the close was refused.
func (m *Manager) CloseCurrent() bool {
	v := m.current
	if v == m.head {
		return false
	}
	prev, next := v.Prev, v.Next
	if prev != nil {
		prev.Next = next
	}
	if next != nil {
		next.Prev = prev
	}
	v.Close()
	if next != nil {
		m.current = next
	} else {
		m.current = prev
	}
	m.count--
	m.renumber()
	return true
}

// CycleNext moves current to the next view, wrapping to the head.
func (m *Manager) CycleNext() {
	if m.current.Next != nil {
		m.current = m.current.Next
	} else {
		m.current = m.head
	}
}

// CyclePrev moves current to the previous view, wrapping to the tail.
func (m *Manager) CyclePrev() {
	if m.current.Prev != nil {
		m.current = m.current.Prev
		return
	}
	tail := m.head
	for tail.Next != nil {
		tail = tail.Next
	}
	m.current = tail
}

// SwitchTo sets the active view directly, clamping its cursor into its
// own dimensions.
func (m *Manager) SwitchTo(v *view.View) {
	m.current = v
	clampCursor(v)
}

func clampCursor(v *view.View) {
	if v.VisibleRowCount <= 0 {
		v.CursorRow, v.StartRow = 0, 0
	} else if v.CursorRow >= v.VisibleRowCount {
		v.CursorRow = v.VisibleRowCount - 1
	}
	if v.Source == nil || v.Source.ColCount() <= 0 {
		v.CursorCol, v.StartCol = 0, 0
	} else if v.CursorCol >= v.Source.ColCount() {
		v.CursorCol = v.Source.ColCount() - 1
	}
}

// renumber renames views "View 1 (Main)", "View 2 (N rows)", ... in list
// order.
func (m *Manager) renumber() {
	i := 1
	for v := m.head; v != nil; v = v.Next {
		if v == m.head {
			v.Name = fmt.Sprintf("View %d (Main)", i)
		} else {
			v.Name = fmt.Sprintf("View %d (%d rows)", i, v.VisibleRowCount)
		}
		i++
	}
}
