package core

import (
	"fmt"
	"strings"

	"github.com/adamavenir/heroes/internal/types"
	"github.com/gobwas/glob"
	"golang.org/x/text/cases"
)

// FilterByName keeps characters whose name contains query, ignoring case.
// An empty query returns the input unchanged; whitespace is matched as typed.
func FilterByName(items []types.CharacterInfo, query string) []types.CharacterInfo {
	if query == "" {
		return items
	}
	folder := cases.Fold()
	needle := folder.String(query)
	out := make([]types.CharacterInfo, 0, len(items))
	for _, item := range items {
		if strings.Contains(folder.String(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out
}

// FilterByPattern keeps characters whose name matches a glob pattern,
// ignoring case.
func FilterByPattern(items []types.CharacterInfo, pattern string) ([]types.CharacterInfo, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return items, nil
	}
	folder := cases.Fold()
	matcher, err := glob.Compile(folder.String(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	out := make([]types.CharacterInfo, 0, len(items))
	for _, item := range items {
		if matcher.Match(folder.String(item.Name)) {
			out = append(out, item)
		}
	}
	return out, nil
}

// FindByName returns the first character whose name equals name, ignoring case.
func FindByName(items []types.CharacterInfo, name string) (types.CharacterInfo, bool) {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(name))
	for _, item := range items {
		if folder.String(item.Name) == needle {
			return item, true
		}
	}
	return types.CharacterInfo{}, false
}
