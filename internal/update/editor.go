package update

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/taskstore"
	"github.com/sandeepkv93/tasklist/internal/views"
)

// openEditor switches to the edit screen. A zero task opens an empty form.
func (m *Model) openEditor(t model.Task) {
	m.CurrentScreen = ScreenEdit
	m.Editor = EditorState{EditingID: t.ID, Focus: fieldTitle}
	d := model.DraftFrom(t)
	m.titleInput.SetValue(d.Title)
	m.categoryInput.SetValue(d.Category)
	m.imageInput.SetValue(d.Image)
	m.focusEditorField()
	if t.ID == "" {
		m.Status = StatusBar{Text: "new task", IsError: false}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("editing: %s", t.Title), IsError: false}
	}
}

func (m *Model) closeEditor() {
	m.CurrentScreen = ScreenTasks
	m.Editor = EditorState{}
	m.titleInput.Blur()
	m.categoryInput.Blur()
	m.imageInput.Blur()
}

func (m Model) handleEditorKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closeEditor()
		m.Status = StatusBar{Text: "edit cancelled", IsError: false}
		return m
	case "tab", "down":
		m.Editor.Focus = (m.Editor.Focus + 1) % fieldCount
		m.focusEditorField()
		return m
	case "shift+tab", "up":
		m.Editor.Focus = (m.Editor.Focus + fieldCount - 1) % fieldCount
		m.focusEditorField()
		return m
	case "enter", "ctrl+s":
		m.saveEditor()
		return m
	}

	in := m.editorInput()
	if msg.Type == tea.KeyRunes {
		in.SetValue(in.Value() + string(msg.Runes))
		return m
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	_ = cmd
	return m
}

func (m *Model) editorInput() *textinput.Model {
	switch m.Editor.Focus {
	case fieldCategory:
		return &m.categoryInput
	case fieldImage:
		return &m.imageInput
	default:
		return &m.titleInput
	}
}

func (m *Model) focusEditorField() {
	m.titleInput.Blur()
	m.categoryInput.Blur()
	m.imageInput.Blur()
	m.editorInput().Focus()
}

func (m Model) editorDraft() model.Draft {
	return model.Draft{
		Title:    m.titleInput.Value(),
		Category: m.categoryInput.Value(),
		Image:    m.imageInput.Value(),
	}
}

// saveEditor creates or updates the task behind the form. A blank title
// raises the warning dialog and keeps the form open.
func (m *Model) saveEditor() {
	draft := m.editorDraft()
	if err := draft.Validate(); err != nil {
		m.warnMissingTitle()
		return
	}
	if !m.requireLoaded() {
		return
	}
	if m.store == nil {
		m.reportError(errNoStore)
		return
	}

	ctx, cancel := m.storeContext()
	defer cancel()

	if m.Editor.EditingID == "" {
		task, err := m.store.Create(ctx, draft)
		if errors.Is(err, model.ErrEmptyTitle) {
			m.warnMissingTitle()
			return
		}
		m.closeEditor()
		m.refreshTasks()
		if task.ID != "" {
			m.selectTask(task.ID)
		}
		if err != nil {
			m.reportError(fmt.Errorf("add task: %w", err))
			return
		}
		m.Status = StatusBar{Text: fmt.Sprintf("task added: %s", task.Title), IsError: false}
		return
	}

	task := draft.WithID(m.Editor.EditingID)
	err := m.store.Update(ctx, task)
	if errors.Is(err, model.ErrEmptyTitle) {
		m.warnMissingTitle()
		return
	}
	m.closeEditor()
	m.refreshTasks()
	switch {
	case err == nil:
		m.selectTask(task.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("task updated: %s", task.Title), IsError: false}
	case errors.Is(err, taskstore.ErrTaskNotFound):
		m.Status = StatusBar{Text: "task no longer exists", IsError: true}
	default:
		m.selectTask(task.ID)
		m.reportError(fmt.Errorf("update task: %w", err))
	}
}

func (m *Model) warnMissingTitle() {
	m.Dialog = DialogMissingTitle
	m.Status = StatusBar{Text: MissingTitleMessage, IsError: false}
}

func (m Model) renderEditorView() string {
	return views.RenderEditorPanel(views.EditorPanelData{
		Editing:       m.Editor.EditingID != "",
		TitleView:     m.titleInput.View(),
		CategoryView:  m.categoryInput.View(),
		ImageView:     m.imageInput.View(),
		FocusedField:  m.Editor.Focus,
		KnownCategory: m.Tasks.Categories(),
	})
}
