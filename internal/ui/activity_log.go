package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// ActivityLog renders human-readable batch progress lines: one per cleared,
// applied, or failed row. Append is safe to call from worker goroutines.
type ActivityLog struct {
	mu    sync.Mutex
	lines []string
	list  *widget.List
}

// NewActivityLog creates an empty activity log
func NewActivityLog() *ActivityLog {
	al := &ActivityLog{}

	al.list = widget.NewList(
		func() int {
			al.mu.Lock()
			defer al.mu.Unlock()
			return len(al.lines)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.TextStyle = fyne.TextStyle{Monospace: true}
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			al.mu.Lock()
			defer al.mu.Unlock()
			if int(id) >= len(al.lines) {
				return
			}
			obj.(*widget.Label).SetText(al.lines[id])
		},
	)

	return al
}

// Append adds a line and scrolls to it. Callable from any goroutine.
func (al *ActivityLog) Append(line string) {
	al.mu.Lock()
	al.lines = append(al.lines, line)
	al.mu.Unlock()

	fyne.Do(func() {
		al.list.Refresh()
		al.list.ScrollToBottom()
	})
}

// Clear drops all lines before a new batch
func (al *ActivityLog) Clear() {
	al.mu.Lock()
	al.lines = nil
	al.mu.Unlock()

	fyne.Do(func() {
		al.list.Refresh()
	})
}

// Widget returns the renderable list
func (al *ActivityLog) Widget() fyne.CanvasObject {
	return al.list
}
