// Package taxonomy builds tag hierarchies and manages tag selections.
//
// Everything here is pure: functions take tag collections and return new
// values without touching their inputs, so callers may recompute views as
// often as they like.
package taxonomy

import (
	"strings"
)

// Tag is a single taxonomy entry.
type Tag struct {
	ID              string
	Codename        string
	Name            string
	DisplayName     string
	ParentCodenames []string
}

// DisplayName returns the label shown for a tag. When the content name differs
// from the system name both are shown as "name - displayName".
func DisplayName(tag Tag) string {
	system := strings.TrimSpace(tag.Name)
	content := strings.TrimSpace(tag.DisplayName)
	if content != "" && content != system {
		return tag.Name + " - " + tag.DisplayName
	}
	if content != "" {
		return tag.DisplayName
	}
	return tag.Name
}

// FilterBySearch keeps tags whose display name contains query, ignoring case.
// A blank query keeps everything.
func FilterBySearch(tags []Tag, query string) []Tag {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		if q == "" || strings.Contains(strings.ToLower(DisplayName(tag)), q) {
			out = append(out, tag)
		}
	}
	return out
}

// ExcludeSelected drops tags whose codename is already in selection.
func ExcludeSelected(tags []Tag, selection Selection) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		if selection.Contains(tag.Codename) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// Codenames lists the codenames of tags in order.
func Codenames(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.Codename
	}
	return out
}
