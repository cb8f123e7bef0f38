package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// toastTTL is how long a toast stays up before expiring on its own.
const toastTTL = 4200 * time.Millisecond

// ToastKind selects the toast styling.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// Toast is one transient notification.
type Toast struct {
	ID      int
	Kind    ToastKind
	Message string
}

// toastExpiredMsg fires when a toast's timer runs out. Expiry of an
// already-dismissed id is a no-op.
type toastExpiredMsg struct {
	id int
}

// ToastStack holds the active toasts. IDs are monotonically increasing
// and scoped to the session.
type ToastStack struct {
	toasts []Toast
	nextID int
}

// Push appends a toast and returns the command that expires it.
func (s *ToastStack) Push(kind ToastKind, message string) tea.Cmd {
	s.nextID++
	id := s.nextID
	s.toasts = append(s.toasts, Toast{ID: id, Kind: kind, Message: message})
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Dismiss removes a toast by id. Removing an unknown id is safe, so
// early dismissal and timer expiry never conflict.
func (s *ToastStack) Dismiss(id int) {
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
}

// DismissOldest removes the toast that has been up the longest.
func (s *ToastStack) DismissOldest() {
	if len(s.toasts) > 0 {
		s.toasts = s.toasts[1:]
	}
}

// Toasts returns the active toasts, oldest first.
func (s *ToastStack) Toasts() []Toast {
	return s.toasts
}

// Empty reports whether no toast is up.
func (s *ToastStack) Empty() bool {
	return len(s.toasts) == 0
}

// View renders the toast stack.
func (s *ToastStack) View(width int) string {
	if len(s.toasts) == 0 {
		return ""
	}

	maxWidth := width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	rendered := make([]string, 0, len(s.toasts))
	for _, t := range s.toasts {
		style := ToastInfoStyle
		switch t.Kind {
		case ToastSuccess:
			style = ToastSuccessStyle
		case ToastError:
			style = ToastErrorStyle
		}
		rendered = append(rendered, style.MaxWidth(maxWidth).Render(t.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
