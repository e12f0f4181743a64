package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/taskstore"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visibleTasks())-1 {
			m.cursor++
		}
	case m.Keys.New, "a":
		if m.requireLoaded() {
			m.openEditor(model.Task{})
		}
	case m.Keys.Edit, "enter":
		if !m.requireLoaded() {
			break
		}
		if sel, ok := m.selectedTask(); ok {
			m.openEditor(sel)
		} else {
			m.Status = StatusBar{Text: "no task selected", IsError: false}
		}
	case m.Keys.Delete, "x":
		if !m.requireLoaded() {
			break
		}
		if sel, ok := m.selectedTask(); ok {
			m.askDelete(sel)
		} else {
			m.Status = StatusBar{Text: "no task selected", IsError: false}
		}
	case m.Keys.Filter:
		m.cycleCategoryFilter()
	}
	return m
}

func (m Model) visibleTasks() model.Collection {
	return m.Tasks.FilterByCategory(m.CategoryFilter)
}

func (m Model) selectedTask() (model.Task, bool) {
	visible := m.visibleTasks()
	if len(visible) == 0 || m.cursor < 0 || m.cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.cursor], true
}

// selectTask moves the cursor onto id when it is visible.
func (m *Model) selectTask(id string) {
	for i, t := range m.visibleTasks() {
		if t.ID == id {
			m.cursor = i
			m.SelectedTaskID = id
			return
		}
	}
}

// refreshTasks copies the store's collection into the model, keeping the
// current selection when it still exists.
func (m *Model) refreshTasks() {
	if m.store == nil {
		return
	}
	prev := m.SelectedTaskID
	m.Tasks = m.store.List()
	if m.CategoryFilter != "" && !containsFold(m.Tasks.Categories(), m.CategoryFilter) {
		m.CategoryFilter = ""
	}
	if prev != "" {
		m.selectTask(prev)
	}
	if m.cursor >= len(m.visibleTasks()) {
		m.cursor = len(m.visibleTasks()) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) cycleCategoryFilter() {
	cats := m.Tasks.Categories()
	if len(cats) == 0 {
		m.CategoryFilter = ""
		m.Status = StatusBar{Text: "no categories to filter by", IsError: false}
		return
	}
	next := ""
	if m.CategoryFilter == "" {
		next = cats[0]
	} else {
		for i, c := range cats {
			if strings.EqualFold(c, m.CategoryFilter) && i+1 < len(cats) {
				next = cats[i+1]
				break
			}
		}
	}
	m.applyCategoryFilter(next)
}

func (m *Model) applyCategoryFilter(category string) {
	m.CategoryFilter = category
	m.cursor = 0
	if category == "" {
		m.Status = StatusBar{Text: "showing all tasks", IsError: false}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("showing category: %s", category), IsError: false}
}

func (m *Model) askDelete(t model.Task) {
	m.Dialog = DialogConfirmDelete
	m.PendingDeleteID = t.ID
	m.Status = StatusBar{Text: fmt.Sprintf("delete %q? (y/n)", t.Title), IsError: false}
}

func (m *Model) deletePending() {
	id := m.PendingDeleteID
	m.Dialog = DialogNone
	m.PendingDeleteID = ""
	if !m.requireLoaded() {
		return
	}
	if m.store == nil {
		m.reportError(errNoStore)
		return
	}
	title := id
	if t, ok := m.store.Get(id); ok {
		title = t.Title
	}

	ctx, cancel := m.storeContext()
	defer cancel()
	err := m.store.Delete(ctx, id)
	m.refreshTasks()
	switch {
	case err == nil:
		m.Status = StatusBar{Text: fmt.Sprintf("task deleted: %s", title), IsError: false}
	case errors.Is(err, taskstore.ErrTaskNotFound):
		m.Status = StatusBar{Text: "task no longer exists", IsError: true}
	default:
		m.reportError(fmt.Errorf("delete task: %w", err))
	}
}

func (m *Model) reportError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	title := "Error"
	if errors.Is(err, taskstore.ErrStorage) {
		title = "Storage Error"
	}
	m.notify(title, err.Error(), "error")
}
