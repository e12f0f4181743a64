package model

import (
	"fmt"
	"strings"
)

// Collection is the ordered task list. Insertion order is display order.
type Collection []Task

func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

func (c Collection) Find(id string) (Task, int, bool) {
	for i, t := range c {
		if t.ID == id {
			return t, i, true
		}
	}
	return Task{}, -1, false
}

func (c Collection) Equal(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// DuplicateIDs lists ids held by more than one task, in first-seen order.
func (c Collection) DuplicateIDs() []string {
	counts := make(map[string]int, len(c))
	var out []string
	for _, t := range c {
		counts[t.ID]++
		if counts[t.ID] == 2 {
			out = append(out, t.ID)
		}
	}
	return out
}

// Categories returns the distinct non-empty categories in first-seen order.
func (c Collection) Categories() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, t := range c {
		name := strings.TrimSpace(t.Category)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

// FilterByCategory matches case-insensitively; an empty category keeps everything.
func (c Collection) FilterByCategory(category string) Collection {
	want := strings.TrimSpace(category)
	if want == "" {
		return c.Clone()
	}
	out := make(Collection, 0, len(c))
	for _, t := range c {
		if strings.EqualFold(strings.TrimSpace(t.Category), want) {
			out = append(out, t)
		}
	}
	return out
}

// Add returns a new collection with t appended. On error c is returned as is.
func Add(c Collection, t Task) (Collection, error) {
	if err := t.Validate(); err != nil {
		return c, err
	}
	if _, _, ok := c.Find(t.ID); ok {
		return c, &ValidationError{Field: "id", Err: fmt.Errorf("%w: %q", ErrDuplicateID, t.ID)}
	}
	out := make(Collection, 0, len(c)+1)
	out = append(out, c...)
	return append(out, t), nil
}

// Update replaces the entry with t's id in place. found is false when no entry
// matches, in which case c is returned unchanged.
func Update(c Collection, t Task) (out Collection, found bool, err error) {
	if err := t.Validate(); err != nil {
		return c, false, err
	}
	_, idx, ok := c.Find(t.ID)
	if !ok {
		return c, false, nil
	}
	out = c.Clone()
	out[idx] = t
	return out, true, nil
}

// Remove drops every entry with the given id. found is false when nothing matched.
func Remove(c Collection, id string) (out Collection, found bool) {
	out = make(Collection, 0, len(c))
	for _, t := range c {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		return c, false
	}
	return out, true
}
