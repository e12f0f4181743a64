package views

import (
	"strings"
	"testing"
)

func TestRenderTaskListPanelEmptyState(t *testing.T) {
	out := RenderTaskListPanel(TaskListPanelData{})
	if !strings.Contains(out, EmptyTitle) || !strings.Contains(out, EmptyHint) {
		t.Fatalf("expected empty state, got %q", out)
	}
}

func TestRenderTaskListPanelRows(t *testing.T) {
	out := RenderTaskListPanel(TaskListPanelData{
		Total: 2,
		Rows: []TaskRowData{
			{ID: "1", Title: "Buy milk", Category: "errands"},
			{ID: "2", Title: "Frame photo", Image: "https://example.com/p.png"},
		},
		SelectedID: "2",
	})
	for _, want := range []string{"  Buy milk", "[errands]", "> Frame photo", "img: https://example.com/p.png"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, EmptyTitle) {
		t.Fatalf("unexpected empty state in %q", out)
	}
}

func TestRenderTaskListPanelFilteredToNothing(t *testing.T) {
	out := RenderTaskListPanel(TaskListPanelData{Filter: "work", Total: 3})
	if !strings.Contains(out, "category: work, 0 of 3") || !strings.Contains(out, "no tasks in this category") {
		t.Fatalf("unexpected filtered output: %q", out)
	}
}

func TestRenderEditorPanelMarksFocusedField(t *testing.T) {
	out := RenderEditorPanel(EditorPanelData{
		Editing:      true,
		TitleView:    "title> a",
		CategoryView: "category> b",
		ImageView:    "image> c",
		FocusedField: 1,
	})
	if !strings.HasPrefix(out, "edit task:") || !strings.Contains(out, "> category> b") || !strings.Contains(out, "  title> a") {
		t.Fatalf("unexpected editor output: %q", out)
	}
}

func TestTaskMarkdown(t *testing.T) {
	md := TaskMarkdown(DetailData{ID: "42", Title: "Buy milk", Category: "errands", Image: "https://example.com/m.png"})
	for _, want := range []string{"# Buy milk", "**Category:** errands", "![Buy milk](https://example.com/m.png)", "`42`"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in %q", want, md)
		}
	}
	if md := TaskMarkdown(DetailData{ID: "1", Title: "x"}); !strings.Contains(md, "_No category_") {
		t.Fatalf("expected no-category marker, got %q", md)
	}
}

func TestRenderAppIncludesDialogAndStatus(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "tasklist",
		LeftPane:   "tasks:",
		Dialog:     RenderConfirmDialog("Buy milk"),
		StatusLine: "status: error: boom",
		Footer:     "keys",
	})
	for _, want := range []string{"tasklist", `Delete "Buy milk"?`, "status: error: boom", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderMarkdownBlank(t *testing.T) {
	if RenderMarkdown("  ") != "" {
		t.Fatal("expected empty render for blank markdown")
	}
}
