package repository

import (
	"strings"

	"github.com/gravitrone/tagpicker/internal/api"
	"github.com/gravitrone/tagpicker/internal/host"
)

// Mode selects which tags make up the universe.
type Mode int

const (
	// ModeAll loads every tag in the language.
	ModeAll Mode = iota
	// ModeParent loads the subtree below one tag, that tag included.
	ModeParent
	// ModeExplicit loads exactly the listed codenames.
	ModeExplicit
	// ModeFixed uses tags supplied in the config without any fetch.
	ModeFixed
)

func (m Mode) String() string {
	switch m {
	case ModeParent:
		return "parent"
	case ModeExplicit:
		return "explicit"
	case ModeFixed:
		return "fixed"
	default:
		return "all"
	}
}

// Query describes the tag universe to load.
type Query struct {
	Mode      Mode
	Parent    string
	Codenames []string
	Fixed     []host.FixedTag
}

// QueryFromConfig applies the element config priority: fixed tags, then an
// explicit codename list, then a parent codename, then everything.
func QueryFromConfig(cfg host.ElementConfig) Query {
	if len(cfg.FixedTags) > 0 {
		return Query{Mode: ModeFixed, Fixed: cfg.FixedTags}
	}
	if codenames := api.SplitCodenames(cfg.SpecificTagCodenames); len(codenames) > 0 {
		return Query{Mode: ModeExplicit, Codenames: codenames}
	}
	if parent := strings.TrimSpace(cfg.ParentTagCodename); parent != "" {
		return Query{Mode: ModeParent, Parent: parent}
	}
	return Query{Mode: ModeAll}
}
