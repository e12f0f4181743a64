package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasklist/internal/commands"
	"github.com/sandeepkv93/tasklist/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.loadPending() {
				return commands.Result{}, m.notLoadedError()
			}
			if m.store == nil {
				return commands.Result{}, errNoStore
			}
			ctx, cancel := m.storeContext()
			defer cancel()
			task, err := m.store.Create(ctx, model.Draft{Title: a.Title, Category: a.Category, Image: a.Image})
			m.refreshTasks()
			if task.ID != "" {
				m.selectTask(task.ID)
			}
			if err != nil {
				return commands.Result{}, fmt.Errorf("add task: %w", err)
			}
			return commands.Result{Message: fmt.Sprintf("task added: %s", task.Title)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			if s.Category != "" && !containsFold(m.Tasks.Categories(), s.Category) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", s.Category)}
			}
			m.applyCategoryFilter(s.Category)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			if m.loadPending() {
				return commands.Result{}, m.notLoadedError()
			}
			task, err := m.paletteTarget(e.ID)
			if err != nil {
				return commands.Result{}, err
			}
			m.openEditor(task)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			if m.loadPending() {
				return commands.Result{}, m.notLoadedError()
			}
			task, err := m.paletteTarget(d.ID)
			if err != nil {
				return commands.Result{}, err
			}
			m.askDelete(task)
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	m.notify("Command", res.Message, "info")
	return m
}

// paletteTarget resolves an explicit id, or the selected task when id is empty.
func (m Model) paletteTarget(id string) (model.Task, error) {
	if id == "" {
		if sel, ok := m.selectedTask(); ok {
			return sel, nil
		}
		return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
	}
	if t, _, ok := m.Tasks.Find(id); ok {
		return t, nil
	}
	return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %s", id)}
}
