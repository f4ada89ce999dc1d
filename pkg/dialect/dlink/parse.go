// Package dlink parses D-Link-style VLAN configuration into the canonical
// VLAN membership table. Ports are keyed by their decimal number.
//
//	create vlan vlan-52 tag 52
//	config vlan vlan-52 add tagged 14,26-28 advertisement disable
//	config vlan vlan-52 add untagged 24
package dlink

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/newtron-network/vlanconv/pkg/model"
	"github.com/newtron-network/vlanconv/pkg/util"
)

// Name is the dialect name used in logs and the dialect registry
const Name = "dlink"

// MaxPort is the highest port number accepted in a port list
const MaxPort = 4096

// Policy decides what happens when a statement changes the mode of a port
// that already has a membership.
type Policy string

const (
	// LastWriteWins lets the later statement replace the earlier
	// membership: untagged overwrites a trunk, tagged replaces an access VLAN.
	LastWriteWins Policy = "last-write-wins"
	// RejectConflicts fails the parse when a port would change mode.
	RejectConflicts Policy = "reject"
)

// ParsePolicy converts a settings or flag value to a Policy
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", LastWriteWins:
		return LastWriteWins, nil
	case RejectConflicts:
		return RejectConflicts, nil
	}
	return "", fmt.Errorf("unknown port conflict policy %q (valid: %s, %s)", s, LastWriteWins, RejectConflicts)
}

// Options configures the D-Link parser
type Options struct {
	PortConflict Policy
}

// Parser implements the D-Link dialect
type Parser struct {
	opts Options
}

// New creates a D-Link parser
func New(opts Options) *Parser {
	if opts.PortConflict == "" {
		opts.PortConflict = LastWriteWins
	}
	return &Parser{opts: opts}
}

// Name returns the dialect name
func (p *Parser) Name() string {
	return Name
}

// Parse converts D-Link configuration text into a membership table.
func (p *Parser) Parse(cfg string) (model.Table, error) {
	return Parse(cfg, p.opts)
}

// parseState is the per-call accumulator. The VLAN name table lives only
// for the duration of one Parse call.
type parseState struct {
	opts  Options
	names map[string]int
	ports map[int]*model.Membership
}

// Parse converts D-Link configuration text into a membership table.
// "create vlan" statements must precede the "config vlan" statements that
// use their names. Any error aborts the parse.
func Parse(cfg string, opts Options) (model.Table, error) {
	if opts.PortConflict == "" {
		opts.PortConflict = LastWriteWins
	}
	st := &parseState{
		opts:  opts,
		names: make(map[string]int),
		ports: make(map[int]*model.Membership),
	}

	for i, line := range strings.Split(cfg, "\n") {
		lineNo := i + 1
		fields := strings.Fields(line)

		var err error
		switch {
		case util.HasFieldPrefix(line, "create", "vlan"):
			err = st.createVLAN(fields)
		case util.HasFieldPrefix(line, "config", "vlan") && len(fields) >= 5 && strings.EqualFold(fields[3], "add"):
			switch strings.ToLower(fields[4]) {
			case "tagged":
				err = st.addTagged(fields)
			case "untagged":
				err = st.addUntagged(fields)
			}
		}
		if err != nil {
			return nil, atLine(err, lineNo)
		}
	}

	table := make(model.Table, len(st.ports))
	for port, m := range st.ports {
		m.Normalize()
		table[strconv.Itoa(port)] = m
	}
	util.WithDialect(Name).Debugf("parsed %d VLAN names, %d ports", len(st.names), len(table))
	return table, nil
}

// create vlan <name> tag <id>
func (st *parseState) createVLAN(fields []string) error {
	if len(fields) < 5 || !strings.EqualFold(fields[3], "tag") {
		return util.NewParseError(strings.Join(fields, " "), "expected: create vlan <name> tag <id>")
	}
	name := fields[2]
	id, err := util.ParseVLANID(fields[4])
	if err != nil {
		return err
	}
	st.names[name] = id
	return nil
}

// config vlan <name> add tagged <ports> ...
func (st *parseState) addTagged(fields []string) error {
	id, ports, err := st.resolve(fields)
	if err != nil {
		return err
	}
	for _, port := range ports {
		m, ok := st.ports[port]
		if ok && m.IsAccess() {
			if err := st.conflict(port, m, model.ModeTrunk); err != nil {
				return err
			}
			ok = false
		}
		if !ok {
			m = &model.Membership{Mode: model.ModeTrunk}
			st.ports[port] = m
		}
		m.AddTagged(id)
	}
	return nil
}

// config vlan <name> add untagged <ports> ...
func (st *parseState) addUntagged(fields []string) error {
	id, ports, err := st.resolve(fields)
	if err != nil {
		return err
	}
	for _, port := range ports {
		if m, ok := st.ports[port]; ok {
			if v, isAccess := m.AccessVLAN(); isAccess && v == id {
				continue
			}
			if err := st.conflict(port, m, model.ModeAccess); err != nil {
				return err
			}
		}
		st.ports[port] = model.NewAccess(id)
	}
	return nil
}

func (st *parseState) resolve(fields []string) (int, []int, error) {
	if len(fields) < 6 {
		return 0, nil, util.NewParseError(strings.Join(fields, " "), "missing port list")
	}
	id, ok := st.names[fields[2]]
	if !ok {
		return 0, nil, util.NewLookupError("vlan name", fields[2])
	}
	ports, err := util.ExpandBoundedRange(fields[5], MaxPort)
	if err != nil {
		return 0, nil, err
	}
	return id, ports, nil
}

// conflict applies the port conflict policy when port, currently holding
// m, receives a statement for mode.
func (st *parseState) conflict(port int, m *model.Membership, mode model.Mode) error {
	name := strconv.Itoa(port)
	if st.opts.PortConflict == RejectConflicts {
		if mode == model.ModeAccess && m.IsAccess() {
			return util.NewInvariantError(name, fmt.Sprintf("untagged VLAN %d already assigned", m.VLANs[0]))
		}
		return util.NewInvariantError(name, fmt.Sprintf("%s statement on a %s port", mode, m))
	}
	util.WithInterface(Name, name).Debugf("replacing %s with %s membership", m, mode)
	return nil
}

func atLine(err error, line int) error {
	switch e := err.(type) {
	case *util.LookupError:
		e.Line = line
		return e
	case *util.ParseError:
		return util.AtLine(e, line)
	}
	return fmt.Errorf("line %d: %w", line, err)
}
