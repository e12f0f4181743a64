package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{ID: "task-1", Title: "Buy milk", Category: "errands"}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBlankTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		err := Task{ID: "task-1", Title: title}.Validate()
		if !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("title %q: expected ErrEmptyTitle, got %v", title, err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "title" {
			t.Fatalf("title %q: expected title ValidationError, got %#v", title, err)
		}
	}
}

func TestTaskValidateRequiresID(t *testing.T) {
	err := Task{Title: "no id"}.Validate()
	if !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	task := Task{ID: "42", Title: "Water plants", Category: "home", Image: "https://example.com/p.png"}
	if got := DraftFrom(task).WithID("42"); got != task {
		t.Fatalf("unexpected round trip: %#v", got)
	}
	if !task.HasImage() {
		t.Fatal("expected image to be reported")
	}
	if (Task{Image: "  "}).HasImage() {
		t.Fatal("blank image should not count")
	}
}

func TestClockGeneratorIsMonotonicWithinTick(t *testing.T) {
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	gen := &ClockGenerator{Now: func() time.Time { return fixed }}
	first := gen.NewID()
	second := gen.NewID()
	if first == second {
		t.Fatalf("expected distinct ids in the same tick, got %s twice", first)
	}
	if first != "1770638400000" || second != "1770638400001" {
		t.Fatalf("unexpected ids: %s %s", first, second)
	}
}

func TestClockGeneratorSeedSkipsStoredIDs(t *testing.T) {
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	gen := &ClockGenerator{Now: func() time.Time { return fixed }}
	gen.Seed(Collection{{ID: "1770638400500", Title: "stored"}, {ID: "not-a-number", Title: "x"}})
	if got := gen.NewID(); got != "1770638400501" {
		t.Fatalf("expected id after seeded max, got %s", got)
	}
}

func TestUUIDGeneratorUnique(t *testing.T) {
	gen := UUIDGenerator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
