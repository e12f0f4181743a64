package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/taskstore"
)

type Screen string

const (
	ScreenTasks Screen = "Tasks"
	ScreenEdit  Screen = "Edit"
)

type Dialog string

const (
	DialogNone          Dialog = ""
	DialogConfirmDelete Dialog = "confirm_delete"
	DialogMissingTitle  Dialog = "missing_title"
)

const MissingTitleMessage = "Please enter a task title"

const defaultStorageTimeout = 2 * time.Second

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	New    string
	Edit   string
	Delete string
	Filter string
	Help   string
	Quit   string
}

// Editor field indexes, in tab order.
const (
	fieldTitle = iota
	fieldCategory
	fieldImage
	fieldCount
)

type EditorState struct {
	// EditingID is empty while creating a new task.
	EditingID string
	Focus     int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	CurrentScreen   Screen
	SelectedTaskID  string
	CategoryFilter  string
	Tasks           model.Collection
	Loaded          bool
	LoadFailed      bool
	Dialog          Dialog
	PendingDeleteID string
	Editor          EditorState
	Palette         CommandPaletteState
	HelpVisible     bool
	Notifications   []Notification
	DesktopEnabled  bool
	notifier        DesktopNotifier
	Status          StatusBar
	Keys            GlobalKeyMap
	Quitting        bool
	LastError       error

	store   *taskstore.Store
	timeout time.Duration
	cursor  int

	titleInput     textinput.Model
	categoryInput  textinput.Model
	imageInput     textinput.Model
	commandInput   textinput.Model
	helpModel      help.Model
	detailViewport viewport.Model
	detailRenderer func(model.Task) string
	detailTask     model.Task
	detailCached   bool
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// TasksLoadedMsg carries the result of the initial load.
type TasksLoadedMsg struct {
	Tasks model.Collection
	Err   error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(store *taskstore.Store) Model {
	m := Model{
		CurrentScreen:  ScreenTasks,
		Tasks:          model.Collection{},
		notifier:       NoopDesktopNotifier{},
		store:          store,
		timeout:        defaultStorageTimeout,
		detailRenderer: renderTaskDetail,
		Keys: GlobalKeyMap{
			New:    "n",
			Edit:   "e",
			Delete: "d",
			Filter: "c",
			Help:   "?",
			Quit:   "q",
		},
	}
	m.initBubbleComponents()
	if store != nil {
		m.Tasks = store.List()
	}
	m.syncBubbleData()
	return m
}

func NewModelWithConfig(store *taskstore.Store, notifier DesktopNotifier, cfg config.RuntimeConfig) Model {
	m := NewModel(store)
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	if d := cfg.StorageTimeout(); d > 0 {
		m.timeout = d
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.Placeholder = "What needs doing?"
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 36

	m.categoryInput = textinput.New()
	m.categoryInput.Prompt = "category> "
	m.categoryInput.CharLimit = 64
	m.categoryInput.Width = 32

	m.imageInput = textinput.New()
	m.imageInput.Prompt = "image> "
	m.imageInput.Placeholder = "https://..."
	m.imageInput.CharLimit = 1024
	m.imageInput.Width = 36

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.detailViewport = viewport.New(44, 12)
}

// syncBubbleData keeps the cursor, selection and detail pane consistent with
// the task mirror.
func (m *Model) syncBubbleData() {
	visible := m.visibleTasks()
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if len(visible) == 0 {
		m.SelectedTaskID = ""
		m.detailViewport.SetContent("")
		m.detailCached = false
	} else {
		sel := visible[m.cursor]
		m.SelectedTaskID = sel.ID
		// Re-render only when the selected task changes.
		if !m.detailCached || sel != m.detailTask {
			render := m.detailRenderer
			if render == nil {
				render = renderTaskDetail
			}
			m.detailViewport.SetContent(render(sel))
			m.detailTask = sel
			m.detailCached = true
		}
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}
}
