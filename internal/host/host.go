// Package host models the platform that embeds the tag picker: it hands the
// widget its element and context, receives the selected value and preferred
// height, and announces edit permission changes.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoHost means the embedding environment is missing or unusable.
var ErrNoHost = errors.New("host unavailable")

// Element is the document field the widget edits.
type Element struct {
	Value    string
	Disabled bool
	Config   json.RawMessage
}

// Variant identifies the language variant being edited.
type Variant struct {
	Codename string `json:"codename"`
}

// Context identifies where the element lives.
type Context struct {
	ProjectID string  `json:"projectId"`
	Variant   Variant `json:"variant"`
}

// Host is the embedding contract. DisabledChanges delivers permission changes
// in the order they happen; it may never fire.
type Host interface {
	Init(ctx context.Context) (Element, Context, error)
	SetValue(value *string) error
	SetHeight(px int) error
	DisabledChanges() <-chan bool
}

// FixedTag is a literal tag supplied in the element config.
type FixedTag struct {
	Codename    string   `json:"codename"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	ID          string   `json:"id"`
	ParentTags  []string `json:"parentTags,omitempty"`
}

// Validate checks the mandatory fields.
func (t FixedTag) Validate() error {
	var missing []string
	if strings.TrimSpace(t.Codename) == "" {
		missing = append(missing, "codename")
	}
	if strings.TrimSpace(t.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(t.DisplayName) == "" {
		missing = append(missing, "displayName")
	}
	if strings.TrimSpace(t.ID) == "" {
		missing = append(missing, "id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("fixed tag %q missing %s", t.Codename, strings.Join(missing, ", "))
	}
	return nil
}

// ElementConfig is the JSON configuration attached to an element.
type ElementConfig struct {
	ParentTagCodename    string     `json:"parentTagCodename,omitempty"`
	SpecificTagCodenames string     `json:"specificTagCodenames,omitempty"`
	FixedTags            []FixedTag `json:"fixedTags,omitempty"`
}

// ParseConfig decodes an element config. Empty input and JSON null give the
// zero config.
func ParseConfig(raw json.RawMessage) (ElementConfig, error) {
	var cfg ElementConfig
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return ElementConfig{}, fmt.Errorf("parse element config: %w", err)
	}
	return cfg, nil
}
