package update

import (
	"errors"
	"strings"
)

const loadingStatus = "loading tasks…"

var (
	errNoStore      = errors.New("update: no task store configured")
	errStillLoading = errors.New(loadingStatus)
	errLoadFailed   = errors.New("tasks not loaded; press r to retry")
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func containsFold(items []string, target string) bool {
	for _, item := range items {
		if strings.EqualFold(item, target) {
			return true
		}
	}
	return false
}
