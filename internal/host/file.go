package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// elementDocument is the on-disk shape of an element file.
type elementDocument struct {
	Value    *string         `json:"value"`
	Disabled bool            `json:"disabled"`
	Config   json.RawMessage `json:"config,omitempty"`
	Context  Context         `json:"context"`
}

// FileHost embeds the widget in a JSON element file. Values pushed by the
// widget are written back to the same file.
type FileHost struct {
	path string

	mu       sync.Mutex
	doc      elementDocument
	loaded   bool
	height   int
	disabled chan bool
}

// NewFileHost creates a host backed by the element file at path.
func NewFileHost(path string) *FileHost {
	return &FileHost{
		path:     path,
		disabled: make(chan bool, 16),
	}
}

// Path returns the element file path.
func (h *FileHost) Path() string {
	return h.path
}

// Init reads the element file.
func (h *FileHost) Init(ctx context.Context) (Element, Context, error) {
	if err := ctx.Err(); err != nil {
		return Element{}, Context{}, err
	}
	data, err := os.ReadFile(h.path)
	if err != nil {
		return Element{}, Context{}, fmt.Errorf("%w: read element %s: %v", ErrNoHost, h.path, err)
	}
	var doc elementDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Element{}, Context{}, fmt.Errorf("%w: parse element %s: %v", ErrNoHost, h.path, err)
	}
	if doc.Context.ProjectID == "" && !hasFixedTags(doc.Config) {
		return Element{}, Context{}, fmt.Errorf("%w: element %s has no project id", ErrNoHost, h.path)
	}

	h.mu.Lock()
	h.doc = doc
	h.loaded = true
	h.mu.Unlock()

	el := Element{Disabled: doc.Disabled, Config: doc.Config}
	if doc.Value != nil {
		el.Value = *doc.Value
	}
	return el, doc.Context, nil
}

// SetValue stores value in the element file. A nil value is written as null.
func (h *FileHost) SetValue(value *string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.loaded {
		return fmt.Errorf("%w: element not initialized", ErrNoHost)
	}
	h.doc.Value = value
	return h.writeLocked()
}

// SetHeight records the preferred height.
func (h *FileHost) SetHeight(px int) error {
	h.mu.Lock()
	h.height = px
	h.mu.Unlock()
	return nil
}

// Height returns the last height pushed by the widget.
func (h *FileHost) Height() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.height
}

// SetDisabled persists a permission change and notifies the widget.
func (h *FileHost) SetDisabled(ctx context.Context, disabled bool) error {
	h.mu.Lock()
	if !h.loaded {
		h.mu.Unlock()
		return fmt.Errorf("%w: element not initialized", ErrNoHost)
	}
	h.doc.Disabled = disabled
	err := h.writeLocked()
	h.mu.Unlock()
	if err != nil {
		return err
	}

	select {
	case h.disabled <- disabled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DisabledChanges delivers permission changes made through SetDisabled.
func (h *FileHost) DisabledChanges() <-chan bool {
	return h.disabled
}

func (h *FileHost) writeLocked() error {
	data, err := json.MarshalIndent(h.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal element: %w", err)
	}
	dir := filepath.Dir(h.path)
	tmp, err := os.CreateTemp(dir, ".element-*")
	if err != nil {
		return fmt.Errorf("write element: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write element: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write element: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write element: %w", err)
	}
	if err := os.Rename(tmpName, h.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write element: %w", err)
	}
	return nil
}

func hasFixedTags(raw json.RawMessage) bool {
	cfg, err := ParseConfig(raw)
	if err != nil {
		return false
	}
	return len(cfg.FixedTags) > 0
}

// WriteElement creates an element file, used to seed a new field.
func WriteElement(path string, value *string, config json.RawMessage, hostCtx Context) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("element %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat element: %w", err)
	}
	h := NewFileHost(path)
	h.doc = elementDocument{Value: value, Config: config, Context: hostCtx}
	h.loaded = true
	return h.writeLocked()
}
