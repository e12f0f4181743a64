package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) handleDialogKey(msg tea.KeyMsg) Model {
	switch m.Dialog {
	case DialogConfirmDelete:
		switch msg.String() {
		case "y", "Y", "enter":
			m.deletePending()
		case "n", "N", "esc":
			m.Dialog = DialogNone
			m.PendingDeleteID = ""
			m.Status = StatusBar{Text: "delete cancelled", IsError: false}
		}
	case DialogMissingTitle:
		switch msg.String() {
		case "enter", "esc":
			m.Dialog = DialogNone
			m.Editor.Focus = fieldTitle
			m.focusEditorField()
			m.Status = StatusBar{}
		}
	}
	return m
}

func (m Model) renderDialog() string {
	switch m.Dialog {
	case DialogConfirmDelete:
		title := m.PendingDeleteID
		if t, _, ok := m.Tasks.Find(m.PendingDeleteID); ok {
			title = t.Title
		}
		return views.RenderConfirmDialog(title)
	case DialogMissingTitle:
		return views.RenderWarningDialog(MissingTitleMessage)
	default:
		return ""
	}
}
