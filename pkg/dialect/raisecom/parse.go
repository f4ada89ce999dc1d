// Package raisecom parses Raisecom-style interface configuration into the
// canonical VLAN membership table.
//
// Interface blocks are separated by "!" and look like:
//
//	interface port-channel 1
//	switchport trunk allowed vlan 7,14,16,19,33,35-38 confirm
//	switchport trunk allowed vlan add 1915,2019,2030
//	switchport mode trunk
//	!
//	interface gigaethernet 1/1/1
//	switchport access vlan 2009
//	!
package raisecom

import (
	"fmt"
	"strings"

	"github.com/newtron-network/vlanconv/pkg/model"
	"github.com/newtron-network/vlanconv/pkg/util"
)

// Name is the dialect name used in logs and the dialect registry
const Name = "raisecom"

// Parser implements the Raisecom dialect
type Parser struct{}

// New creates a Raisecom parser
func New() *Parser {
	return &Parser{}
}

// Name returns the dialect name
func (p *Parser) Name() string {
	return Name
}

// Parse converts Raisecom configuration text into a membership table.
// Any malformed block aborts the parse.
func (p *Parser) Parse(cfg string) (model.Table, error) {
	return Parse(cfg)
}

// block accumulates the VLAN declarations of one interface block
type block struct {
	name      string
	nameLine  int
	mode      model.Mode
	tokens    []string
	tokenLine []int
}

// Parse converts Raisecom configuration text into a membership table.
func Parse(cfg string) (model.Table, error) {
	table := make(model.Table)

	line := 1
	for _, text := range strings.Split(cfg, "!") {
		startLine := line
		line += strings.Count(text, "\n")

		if !strings.Contains(text, "interface") || !strings.Contains(text, "switchport") {
			continue
		}

		b, err := scanBlock(text, startLine)
		if err != nil {
			return nil, err
		}
		if b.name == "" {
			continue
		}

		vlans, err := b.expand()
		if err != nil {
			return nil, err
		}
		if len(vlans) == 0 {
			util.WithInterface(Name, b.name).Debug("block declares no VLANs, skipping")
			continue
		}

		m := &model.Membership{Mode: b.mode, VLANs: vlans}
		if err := m.Validate(b.name); err != nil {
			return nil, err
		}
		if _, dup := table[b.name]; dup {
			return nil, util.NewInvariantError(b.name, fmt.Sprintf("interface declared twice (line %d)", b.nameLine))
		}
		table[b.name] = m
		util.WithInterface(Name, b.name).Debugf("parsed %s", m)
	}

	return table, nil
}

func scanBlock(text string, startLine int) (*block, error) {
	b := &block{}

	for i, raw := range strings.Split(text, "\n") {
		lineNo := startLine + i
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}

		switch {
		case strings.EqualFold(fields[0], "interface"):
			if len(fields) < 2 {
				return nil, &util.ParseError{Line: lineNo, Token: strings.TrimSpace(raw), Reason: "interface line has no name"}
			}
			b.name = strings.Join(fields[1:], " ")
			b.nameLine = lineNo

		case util.HasFieldPrefix(raw, "switchport", "trunk", "allowed", "vlan"):
			// "... vlan <ranges> confirm" declares the initial set,
			// "... vlan add <ranges>" extends it.
			switch {
			case strings.EqualFold(fields[len(fields)-1], "confirm") && len(fields) >= 6:
				if err := b.setMode(model.ModeTrunk, lineNo); err != nil {
					return nil, err
				}
				b.add(fields[len(fields)-2], lineNo)
			case len(fields) >= 6 && strings.EqualFold(fields[4], "add"):
				if err := b.setMode(model.ModeTrunk, lineNo); err != nil {
					return nil, err
				}
				b.add(util.LastField(raw), lineNo)
			case len(fields) >= 5 && strings.EqualFold(fields[4], "remove"):
				return nil, &util.ParseError{Line: lineNo, Token: strings.TrimSpace(raw), Reason: "removing VLANs from the allowed list is not supported"}
			default:
				return nil, &util.ParseError{Line: lineNo, Token: strings.TrimSpace(raw), Reason: "unrecognized trunk allowed vlan statement"}
			}

		case util.HasFieldPrefix(raw, "switchport", "access", "vlan"):
			if len(fields) < 4 {
				return nil, &util.ParseError{Line: lineNo, Token: strings.TrimSpace(raw), Reason: "access vlan statement has no VLAN"}
			}
			if err := b.setMode(model.ModeAccess, lineNo); err != nil {
				return nil, err
			}
			b.add(util.LastField(raw), lineNo)
		}
	}

	return b, nil
}

func (b *block) setMode(mode model.Mode, line int) error {
	if b.mode != "" && b.mode != mode {
		name := b.name
		if name == "" {
			name = fmt.Sprintf("block at line %d", line)
		}
		return util.NewInvariantError(name, fmt.Sprintf("line %d declares %s VLANs on a %s interface", line, mode, b.mode))
	}
	b.mode = mode
	return nil
}

func (b *block) add(token string, line int) {
	b.tokens = append(b.tokens, token)
	b.tokenLine = append(b.tokenLine, line)
}

// expand decompresses every collected range token, keeping the line of
// the offending token on error.
func (b *block) expand() ([]int, error) {
	var all []int
	for i, tok := range b.tokens {
		vlans, err := util.ExpandVLANRange(tok)
		if err != nil {
			return nil, fmt.Errorf("interface %s: %w", b.name, util.AtLine(err, b.tokenLine[i]))
		}
		all = append(all, vlans...)
	}
	return util.SortedUnique(all), nil
}
