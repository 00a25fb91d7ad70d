package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SavedTag is the persisted form of a selected tag.
type SavedTag struct {
	Codename    string   `json:"codename"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	ID          string   `json:"id"`
	ParentTags  []string `json:"parentTags"`
}

// ParseSavedValue extracts codenames from a persisted field value.
//
// Three shapes are understood, tried in this order: an array of saved tag
// objects, an array of codename strings, and a single codename. Text that is
// not JSON at all is taken as one bare codename. Any other JSON shape yields
// no codenames.
func ParseSavedValue(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	data := []byte(raw)
	if !json.Valid(data) {
		return []string{raw}
	}

	if objects, ok := decodeSavedObjects(data); ok {
		return objects
	}

	var codenames []string
	if err := json.Unmarshal(data, &codenames); err == nil {
		if codenames == nil {
			return []string{}
		}
		return codenames
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		return []string{single}
	}

	return []string{}
}

// decodeSavedObjects accepts only a non-empty array whose elements are all
// objects carrying a string codename.
func decodeSavedObjects(data []byte) ([]string, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || len(items) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !bytes.HasPrefix(bytes.TrimSpace(item), []byte("{")) {
			return nil, false
		}
		var obj struct {
			Codename *string `json:"codename"`
		}
		if err := json.Unmarshal(item, &obj); err != nil || obj.Codename == nil {
			return nil, false
		}
		out = append(out, *obj.Codename)
	}
	return out, true
}

// SavedTags converts a selection into its persisted form.
func SavedTags(s Selection) []SavedTag {
	out := make([]SavedTag, 0, s.Len())
	for _, tag := range s.tags {
		display := tag.DisplayName
		if display == "" {
			display = tag.Name
		}
		parents := tag.ParentCodenames
		if parents == nil {
			parents = []string{}
		}
		out = append(out, SavedTag{
			Codename:    tag.Codename,
			Name:        tag.Name,
			DisplayName: display,
			ID:          tag.ID,
			ParentTags:  parents,
		})
	}
	return out
}

// SerializeSelection encodes a selection as a JSON array of saved tags. An
// empty selection encodes as "[]".
func SerializeSelection(s Selection) (string, error) {
	data, err := json.Marshal(SavedTags(s))
	if err != nil {
		return "", fmt.Errorf("encode selection: %w", err)
	}
	return string(data), nil
}
