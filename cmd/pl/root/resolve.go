package root

import (
	"fmt"
	"strings"

	"planloop/internal/engine"
)

// shortID trims a uuid for display; any unique prefix is accepted back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveProject resolves an id prefix (or exact name) against the project
// list.
func resolveProject(store *engine.Store, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("id is required")
	}

	var matches []engine.Project
	for _, p := range store.Projects() {
		if strings.HasPrefix(p.ID, prefix) || p.Name == prefix {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no project matches %q", prefix)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

// findPlanItem resolves an id prefix against the current day's plan.
func findPlanItem(store *engine.Store, prefix string) (engine.Item, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return engine.Item{}, fmt.Errorf("id is required")
	}

	var matches []engine.Item
	for _, it := range store.Snapshot().CurrentDay.PlanItems {
		if strings.HasPrefix(it.ID, prefix) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return engine.Item{}, fmt.Errorf("no plan item matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return engine.Item{}, fmt.Errorf("id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
