package api

import (
	"encoding/json"
	"fmt"
)

// QueryParams holds URL query parameters for list endpoints.
type QueryParams map[string]string

// --- API Response Envelope ---

type itemsResponse[T any] struct {
	Items []T `json:"items"`
}

type apiError struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// --- Tag Items ---

// TagItem is a content item of the tag type as returned by the delivery API.
type TagItem struct {
	System   ItemSystem  `json:"system"`
	Elements TagElements `json:"elements"`
}

// ItemSystem carries the identity fields every content item has.
type ItemSystem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Codename string `json:"codename"`
	Type     string `json:"type"`
	Language string `json:"language"`
}

// TagElements are the content elements of a tag item.
type TagElements struct {
	DisplayName TextElement    `json:"display_name"`
	ParentTags  LinkedElements `json:"parent_tags"`
}

// TextElement is a single text element.
type TextElement struct {
	Type  string `json:"type,omitempty"`
	Value string `json:"value"`
}

// LinkedElements lists the codenames of linked items.
type LinkedElements struct {
	Type  string    `json:"type,omitempty"`
	Value Codenames `json:"value"`
}

// Codenames tolerates the element value arriving as null, as an array, or as a
// comma separated string.
type Codenames []string

func (c *Codenames) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*c = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = SplitCodenames(s)
		return nil
	}
	return fmt.Errorf("codenames: unsupported value %s", string(data))
}
