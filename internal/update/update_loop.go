package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasklist/internal/taskstore"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// loadCmd reads the stored collection off the update loop. Mutations stay
// disabled until its TasksLoadedMsg succeeds.
func (m Model) loadCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store, timeout := m.store, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		tasks, err := store.Load(ctx)
		return TasksLoadedMsg{Tasks: tasks, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Dialog != DialogNone {
			return m.handleDialogKey(typed), nil
		}
		if m.Palette.Active {
			if typed.String() == m.Keys.Help && m.commandInput.Value() == "" {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}
		if m.CurrentScreen == ScreenEdit {
			return m.handleEditorKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		case "r":
			if m.LoadFailed {
				m.LoadFailed = false
				m.Status = StatusBar{Text: loadingStatus, IsError: false}
				return m, m.loadCmd()
			}
		}
		return m.handleTasksKey(typed), nil
	case TasksLoadedMsg:
		m.onTasksLoaded(typed)
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentScreen {
	case ScreenEdit:
		leftPane = m.renderEditorView()
		rightPane = m.renderHelpIfVisible()
	default:
		leftPane = m.renderTaskListView()
		rightPane = strings.TrimSpace(m.renderDetailView() + m.renderHelpIfVisible())
	}
	if p := m.renderCommandPalette(); p != "" {
		leftPane = leftPane + "\n\n" + p
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("tasklist | screen: %s | tasks: %d | selected: %s", m.CurrentScreen, len(m.Tasks), m.SelectedTaskID),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		Dialog:       m.renderDialog(),
		StatusLine:   status,
		Notification: strings.TrimSpace(m.renderNotificationsView()),
		Footer: fmt.Sprintf("keys: %s new | %s edit | %s delete | %s category | / cmd | %s help | %s quit",
			m.Keys.New, m.Keys.Edit, m.Keys.Delete, m.Keys.Filter, m.Keys.Help, m.Keys.Quit),
	})
}

// onTasksLoaded unlocks editing after a successful load. An unreadable payload
// also unlocks it, since the store keeps a copy before overwriting; any other
// read failure keeps editing locked until a retry succeeds.
func (m *Model) onTasksLoaded(msg TasksLoadedMsg) {
	defer m.refreshTasks()
	if msg.Err == nil {
		m.Loaded = true
		m.LoadFailed = false
		m.Status = StatusBar{Text: fmt.Sprintf("%d task(s) loaded", len(msg.Tasks)), IsError: false}
		return
	}

	m.LastError = msg.Err
	if errors.Is(msg.Err, taskstore.ErrMalformedPayload) {
		m.Loaded = true
		m.LoadFailed = false
		m.Status = StatusBar{
			Text:    fmt.Sprintf("load tasks: %v (the next save keeps it under %s)", msg.Err, m.store.Key()+taskstore.CorruptSuffix),
			IsError: true,
		}
	} else {
		m.LoadFailed = true
		m.Status = StatusBar{Text: fmt.Sprintf("load tasks: %v (press r to retry)", msg.Err), IsError: true}
	}
	m.notify("Storage Error", m.Status.Text, "error")
}

// requireLoaded reports whether mutations are allowed, setting a status
// explaining why not.
func (m *Model) requireLoaded() bool {
	if !m.loadPending() {
		return true
	}
	m.Status = StatusBar{Text: m.notLoadedError().Error(), IsError: false}
	return false
}

// loadPending is true until the stored collection has been read. A model
// without a store has nothing to wait for.
func (m Model) loadPending() bool {
	return !m.Loaded && m.store != nil
}

func (m Model) notLoadedError() error {
	if m.LoadFailed {
		return errLoadFailed
	}
	return errStillLoading
}

func (m Model) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}
