package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) renderTaskListView() string {
	visible := m.visibleTasks()
	rows := make([]views.TaskRowData, 0, len(visible))
	for _, t := range visible {
		rows = append(rows, views.TaskRowData{
			ID:       t.ID,
			Title:    t.Title,
			Category: t.Category,
			Image:    t.Image,
		})
	}
	return views.RenderTaskListPanel(views.TaskListPanelData{
		Filter:     m.CategoryFilter,
		Total:      len(m.Tasks),
		Rows:       rows,
		SelectedID: m.SelectedTaskID,
	})
}

func (m Model) renderDetailView() string {
	if m.SelectedTaskID == "" {
		return ""
	}
	return "detail:\n" + m.detailViewport.View()
}

func renderTaskDetail(t model.Task) string {
	return views.RenderMarkdown(views.TaskMarkdown(views.DetailData{
		ID:       t.ID,
		Title:    t.Title,
		Category: t.Category,
		Image:    t.Image,
	}))
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
