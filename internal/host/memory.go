package host

import (
	"context"
	"sync"
)

// MemoryHost keeps the element in memory and records everything the widget
// pushes.
type MemoryHost struct {
	Element Element
	Context Context
	// InitErr, when set, is returned from Init.
	InitErr error

	mu       sync.Mutex
	values   []*string
	heights  []int
	disabled chan bool
}

// NewMemoryHost creates a host for the given element.
func NewMemoryHost(el Element, hostCtx Context) *MemoryHost {
	return &MemoryHost{
		Element:  el,
		Context:  hostCtx,
		disabled: make(chan bool, 16),
	}
}

func (h *MemoryHost) Init(ctx context.Context) (Element, Context, error) {
	if err := ctx.Err(); err != nil {
		return Element{}, Context{}, err
	}
	if h.InitErr != nil {
		return Element{}, Context{}, h.InitErr
	}
	return h.Element, h.Context, nil
}

func (h *MemoryHost) SetValue(value *string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.values = append(h.values, value)
	return nil
}

func (h *MemoryHost) SetHeight(px int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.heights = append(h.heights, px)
	return nil
}

func (h *MemoryHost) DisabledChanges() <-chan bool {
	return h.disabled
}

// Disable queues a permission change.
func (h *MemoryHost) Disable(disabled bool) {
	h.disabled <- disabled
}

// Close ends the permission change stream.
func (h *MemoryHost) Close() {
	close(h.disabled)
}

// Values returns every value pushed so far.
func (h *MemoryHost) Values() []*string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*string(nil), h.values...)
}

// LastValue returns the latest pushed value and whether any was pushed.
func (h *MemoryHost) LastValue() (*string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.values) == 0 {
		return nil, false
	}
	return h.values[len(h.values)-1], true
}

// Heights returns every height pushed so far.
func (h *MemoryHost) Heights() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]int(nil), h.heights...)
}
