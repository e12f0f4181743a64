package views

import (
	"fmt"
	"strings"
)

const (
	EmptyTitle = "No tasks yet"
	EmptyHint  = "press n to add your first task"
)

type TaskRowData struct {
	ID       string
	Title    string
	Category string
	Image    string
}

type TaskListPanelData struct {
	Filter     string
	Total      int
	Rows       []TaskRowData
	SelectedID string
}

type EditorPanelData struct {
	Editing       bool
	TitleView     string
	CategoryView  string
	ImageView     string
	FocusedField  int
	KnownCategory []string
}

type HelpPanelData struct {
	CurrentScreen string
	Bindings      []string
	HelpView      string
}

type DetailData struct {
	Title    string
	Category string
	Image    string
	ID       string
}

func RenderTaskListPanel(data TaskListPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:")
	if data.Filter != "" {
		b.WriteString(fmt.Sprintf(" (category: %s, %d of %d)", data.Filter, len(data.Rows), data.Total))
	}
	b.WriteString("\n")

	if data.Total == 0 {
		b.WriteString("\n" + EmptyTitle + "\n")
		b.WriteString(mutedStyle.Render(EmptyHint))
		return b.String()
	}
	if len(data.Rows) == 0 {
		b.WriteString(mutedStyle.Render("(no tasks in this category)"))
		return b.String()
	}

	for _, row := range data.Rows {
		cursor := " "
		title := row.Title
		if row.ID == data.SelectedID {
			cursor = ">"
			title = cursorStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s %s", cursor, title))
		if row.Category != "" {
			b.WriteString(" " + mutedStyle.Render("["+row.Category+"]"))
		}
		b.WriteString("\n")
		if row.Image != "" {
			b.WriteString("    " + mutedStyle.Render("img: "+row.Image) + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderEditorPanel(data EditorPanelData) string {
	var b strings.Builder
	if data.Editing {
		b.WriteString("edit task:\n")
	} else {
		b.WriteString("new task:\n")
	}
	fields := []string{data.TitleView, data.CategoryView, data.ImageView}
	for i, f := range fields {
		marker := " "
		if i == data.FocusedField {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", marker, f))
	}
	if len(data.KnownCategory) > 0 {
		b.WriteString(mutedStyle.Render("categories: "+strings.Join(data.KnownCategory, ", ")) + "\n")
	}
	b.WriteString("keys: [tab]next [shift+tab]prev [enter/ctrl+s]save [esc]back")
	return b.String()
}

// TaskMarkdown builds the detail pane source for one task.
func TaskMarkdown(d DetailData) string {
	var b strings.Builder
	b.WriteString("# " + d.Title + "\n\n")
	if d.Category != "" {
		b.WriteString("**Category:** " + d.Category + "\n\n")
	} else {
		b.WriteString("_No category_\n\n")
	}
	if d.Image != "" {
		b.WriteString(fmt.Sprintf("![%s](%s)\n\n", d.Title, d.Image))
	}
	b.WriteString("`" + d.ID + "`\n")
	return b.String()
}

func RenderConfirmDialog(title string) string {
	return fmt.Sprintf("Delete %q?\n[y/enter] delete   [n/esc] cancel", title)
}

func RenderWarningDialog(message string) string {
	return fmt.Sprintf("%s\n[enter/esc] ok", message)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s screen:\n%s\n%s",
		strings.ToLower(data.CurrentScreen),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
