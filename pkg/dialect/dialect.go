// Package dialect dispatches configuration text to the parser of one
// vendor dialect.
package dialect

import (
	"fmt"
	"strings"

	"github.com/newtron-network/vlanconv/pkg/dialect/dlink"
	"github.com/newtron-network/vlanconv/pkg/dialect/raisecom"
	"github.com/newtron-network/vlanconv/pkg/model"
)

// Dialect identifies a vendor configuration syntax
type Dialect int

const (
	Raisecom Dialect = iota
	DLink
)

// Parser converts vendor configuration text into a membership table
type Parser interface {
	Name() string
	Parse(cfg string) (model.Table, error)
}

// Options carries dialect-specific parser settings
type Options struct {
	// PortConflict applies to D-Link only
	PortConflict dlink.Policy
}

var registry = [...]struct {
	name    string
	aliases []string
	build   func(Options) Parser
}{
	Raisecom: {
		name:    raisecom.Name,
		aliases: []string{"rc"},
		build:   func(Options) Parser { return raisecom.New() },
	},
	DLink: {
		name:    dlink.Name,
		aliases: []string{"d-link"},
		build: func(opts Options) Parser {
			return dlink.New(dlink.Options{PortConflict: opts.PortConflict})
		},
	},
}

// String returns the canonical dialect name
func (d Dialect) String() string {
	if d < 0 || int(d) >= len(registry) {
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
	return registry[d].name
}

// Lookup resolves a dialect by name or alias, case-insensitively
func Lookup(name string) (Dialect, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i, entry := range registry {
		if entry.name == normalized {
			return Dialect(i), nil
		}
		for _, alias := range entry.aliases {
			if alias == normalized {
				return Dialect(i), nil
			}
		}
	}
	return 0, fmt.Errorf("unknown dialect: %s (valid: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the canonical names of all dialects
func Names() []string {
	names := make([]string, len(registry))
	for i, entry := range registry {
		names[i] = entry.name
	}
	return names
}

// New returns the parser for d
func New(d Dialect, opts Options) (Parser, error) {
	if d < 0 || int(d) >= len(registry) {
		return nil, fmt.Errorf("unknown dialect: %s", d)
	}
	return registry[d].build(opts), nil
}

// Get returns the parser for a dialect name
func Get(name string, opts Options) (Parser, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(d, opts)
}

// Parse parses cfg with the parser for d
func Parse(d Dialect, cfg string, opts Options) (model.Table, error) {
	p, err := New(d, opts)
	if err != nil {
		return nil, err
	}
	table, err := p.Parse(cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing %s config: %w", p.Name(), err)
	}
	return table, nil
}
