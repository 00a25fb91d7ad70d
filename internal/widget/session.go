// Package widget runs one tag picker session: it loads the tag universe,
// seeds the selection from the saved value, applies user changes one at a
// time and reports value and height back to the host.
package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gravitrone/tagpicker/internal/host"
	"github.com/gravitrone/tagpicker/internal/repository"
	"github.com/gravitrone/tagpicker/internal/taxonomy"
)

// State is the session lifecycle stage.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateInteractive
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateInteractive:
		return "interactive"
	default:
		return "uninitialized"
	}
}

var (
	ErrNotReady   = errors.New("session not ready")
	ErrDisabled   = errors.New("editing disabled")
	ErrUnknownTag = errors.New("unknown tag")
	ErrStarted    = errors.New("session already started")
)

// Loader provides the tag universe.
type Loader interface {
	Load(ctx context.Context, projectID, language string, q repository.Query) repository.Result
}

// Option is one entry of the dropdown.
type Option struct {
	Tag   taxonomy.Tag
	Depth int
	Label string
}

// Session is a single picker session. A language change needs a new Session.
type Session struct {
	id     string
	host   host.Host
	loader Loader
	logger *zap.Logger

	mu        sync.Mutex
	state     State
	hostCtx   host.Context
	query     repository.Query
	universe  []taxonomy.Tag
	forest    taxonomy.Forest
	depth     map[string]int
	selection taxonomy.Selection
	search    string
	open      bool
	disabled  bool
	loadErr   error
	missing   []string
	height    int
}

// New creates a session. A nil logger discards diagnostics.
func New(h host.Host, loader Loader, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		host:   h,
		loader: loader,
		logger: logger.With(zap.String("session_id", id)),
	}
}

// ID identifies the session in diagnostics.
func (s *Session) ID() string {
	return s.id
}

// State returns the lifecycle stage.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start initializes against the host, loads tags and reconciles the saved
// value. Only a host failure is returned; a failed tag load leaves the session
// ready with an empty universe.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return ErrStarted
	}
	s.mu.Unlock()

	if s.host == nil {
		s.logger.Error("host init failed", zap.Error(host.ErrNoHost))
		return fmt.Errorf("init host: %w", host.ErrNoHost)
	}
	el, hostCtx, err := s.host.Init(ctx)
	if err != nil {
		s.logger.Error("host init failed", zap.Error(err))
		return fmt.Errorf("init host: %w", err)
	}

	cfg, err := host.ParseConfig(el.Config)
	if err != nil {
		s.logger.Warn("element config ignored", zap.Error(err))
	}
	q := repository.QueryFromConfig(cfg)

	s.mu.Lock()
	s.state = StateLoading
	s.hostCtx = hostCtx
	s.query = q
	s.disabled = el.Disabled
	s.mu.Unlock()

	res := s.loader.Load(ctx, hostCtx.ProjectID, hostCtx.Variant.Codename, q)
	if res.Err != nil {
		s.logger.Warn("tags unavailable", zap.Error(res.Err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.universe = res.Tags
	s.forest = taxonomy.BuildForest(res.Tags)
	s.depth = make(map[string]int, len(res.Tags))
	for _, node := range taxonomy.Flatten(s.forest) {
		s.depth[node.Codename] = node.Depth
	}
	s.loadErr = res.Err
	s.missing = res.Missing

	saved := taxonomy.ParseSavedValue(el.Value)
	s.selection = taxonomy.Reconcile(saved, s.universe)
	if dropped := len(saved) - s.selection.Len(); dropped > 0 {
		s.logger.Debug("saved tags not found", zap.Int("dropped", dropped))
	}
	s.state = StateReady
	s.logger.Info("session ready",
		zap.String("project_id", hostCtx.ProjectID),
		zap.String("language", hostCtx.Variant.Codename),
		zap.Stringer("mode", q.Mode),
		zap.Int("tags", len(s.universe)),
		zap.Int("selected", s.selection.Len()),
	)
	return s.pushHeightLocked()
}

// Watch applies host permission changes until ctx ends or the host closes
// the stream.
func (s *Session) Watch(ctx context.Context) error {
	if s.host == nil {
		return host.ErrNoHost
	}
	changes := s.host.DisabledChanges()
	for {
		select {
		case disabled, ok := <-changes:
			if !ok {
				return nil
			}
			if err := s.SetDisabled(disabled); err != nil {
				s.logger.Warn("apply disabled change", zap.Error(err))
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Add selects the tag with the given codename. Selecting a tag twice is a
// no-op.
func (s *Session) Add(codename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	tag, ok := s.lookupLocked(codename)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTag, codename)
	}
	if !s.selection.Add(tag) {
		return nil
	}
	return s.commitLocked()
}

// Remove deselects the tag with the given codename.
func (s *Session) Remove(codename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	if !s.selection.Remove(codename) {
		return nil
	}
	return s.commitLocked()
}

// Clear deselects every tag.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	if s.selection.Len() == 0 {
		return nil
	}
	s.selection = taxonomy.Selection{}
	return s.commitLocked()
}

// SetQuery changes the search text.
func (s *Session) SetQuery(q string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state < StateReady {
		return ErrNotReady
	}
	s.search = q
	return s.pushHeightLocked()
}

// SetOpen opens or closes the dropdown. A disabled session stays closed.
func (s *Session) SetOpen(open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state < StateReady {
		return ErrNotReady
	}
	if open && s.disabled {
		return ErrDisabled
	}
	s.open = open
	return s.pushHeightLocked()
}

// SetDisabled applies an edit permission change.
func (s *Session) SetDisabled(disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = disabled
	if disabled {
		s.open = false
	}
	if s.state < StateReady {
		return nil
	}
	return s.pushHeightLocked()
}

// Disabled reports whether editing is currently blocked.
func (s *Session) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled
}

// Open reports whether the dropdown is open.
func (s *Session) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Query returns the current search text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// Mode returns how the tag universe was chosen.
func (s *Session) Mode() repository.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query.Mode
}

// Language returns the variant codename the session was started with.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostCtx.Variant.Codename
}

// LoadError returns why the tag universe may be incomplete.
func (s *Session) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Missing lists configured codenames that were not found.
func (s *Session) Missing() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.missing...)
}

// Universe returns every loaded tag in load order.
func (s *Session) Universe() []taxonomy.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]taxonomy.Tag(nil), s.universe...)
}

// Selected returns the selected tags in selection order.
func (s *Session) Selected() []taxonomy.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Tags()
}

// Value returns the serialized selection.
func (s *Session) Value() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return taxonomy.SerializeSelection(s.selection)
}

// Height returns the last height reported to the host.
func (s *Session) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

// Options returns the dropdown entries: the flattened hierarchy without
// selected tags, narrowed by the search text.
func (s *Session) Options() []Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.optionsLocked()
}

func (s *Session) optionsLocked() []Option {
	flat := taxonomy.Tags(taxonomy.Flatten(s.forest))
	visible := taxonomy.FilterBySearch(taxonomy.ExcludeSelected(flat, s.selection), s.search)
	out := make([]Option, len(visible))
	for i, tag := range visible {
		out[i] = Option{
			Tag:   tag,
			Depth: s.depth[tag.Codename],
			Label: taxonomy.DisplayName(tag),
		}
	}
	return out
}

func (s *Session) editableLocked() error {
	if s.state < StateReady {
		return ErrNotReady
	}
	if s.disabled {
		return ErrDisabled
	}
	return nil
}

func (s *Session) lookupLocked(codename string) (taxonomy.Tag, bool) {
	for _, tag := range s.universe {
		if tag.Codename == codename {
			return tag, true
		}
	}
	return taxonomy.Tag{}, false
}

// commitLocked reports a changed selection to the host.
func (s *Session) commitLocked() error {
	s.state = StateInteractive
	value, err := taxonomy.SerializeSelection(s.selection)
	if err != nil {
		return err
	}
	if err := s.host.SetValue(&value); err != nil {
		s.logger.Error("push value failed", zap.Error(err))
		return fmt.Errorf("push value: %w", err)
	}
	return s.pushHeightLocked()
}

func (s *Session) pushHeightLocked() error {
	options := 0
	if s.open {
		options = len(s.optionsLocked())
	}
	s.height = EstimateHeight(s.selection.Len(), s.open, options)
	if err := s.host.SetHeight(s.height); err != nil {
		s.logger.Error("push height failed", zap.Error(err))
		return fmt.Errorf("push height: %w", err)
	}
	return nil
}
