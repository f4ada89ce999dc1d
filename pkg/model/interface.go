// Package model defines the canonical VLAN membership model shared by the
// dialect parsers, the config generator and the analyzer.
package model

import (
	"fmt"
	"sort"

	"github.com/newtron-network/vlanconv/pkg/util"
)

// Mode is the switchport mode of an interface
type Mode string

const (
	ModeTrunk  Mode = "trunk"  // tagged, one or more VLANs
	ModeAccess Mode = "access" // untagged, exactly one VLAN
)

// Membership is the VLAN membership of one interface
type Membership struct {
	Mode  Mode  `json:"mode" yaml:"mode"`
	VLANs []int `json:"vlans" yaml:"vlans"`
}

// NewAccess returns an access membership for vlan
func NewAccess(vlan int) *Membership {
	return &Membership{Mode: ModeAccess, VLANs: []int{vlan}}
}

// NewTrunk returns a trunk membership carrying vlans, sorted and de-duplicated
func NewTrunk(vlans ...int) *Membership {
	m := &Membership{Mode: ModeTrunk}
	for _, v := range vlans {
		m.AddTagged(v)
	}
	m.Normalize()
	return m
}

// IsTrunk returns true for trunk memberships
func (m *Membership) IsTrunk() bool {
	return m.Mode == ModeTrunk
}

// IsAccess returns true for access memberships
func (m *Membership) IsAccess() bool {
	return m.Mode == ModeAccess
}

// AccessVLAN returns the untagged VLAN of an access membership
func (m *Membership) AccessVLAN() (int, bool) {
	if !m.IsAccess() || len(m.VLANs) != 1 {
		return 0, false
	}
	return m.VLANs[0], true
}

// HasVLAN returns true if the membership carries vlan
func (m *Membership) HasVLAN(vlan int) bool {
	for _, v := range m.VLANs {
		if v == vlan {
			return true
		}
	}
	return false
}

// AddTagged appends vlan to the tagged set unless it is already present.
// Order of first append is kept until Normalize is called.
func (m *Membership) AddTagged(vlan int) {
	if m.HasVLAN(vlan) {
		return
	}
	m.VLANs = append(m.VLANs, vlan)
}

// Normalize sorts the VLAN list ascending and drops duplicates
func (m *Membership) Normalize() {
	sort.Ints(m.VLANs)
	out := m.VLANs[:0]
	for i, v := range m.VLANs {
		if i == 0 || v != m.VLANs[i-1] {
			out = append(out, v)
		}
	}
	m.VLANs = out
}

// Validate checks the membership invariants for the named interface
func (m *Membership) Validate(name string) error {
	switch m.Mode {
	case ModeAccess:
		if len(m.VLANs) != 1 {
			return util.NewInvariantError(name, fmt.Sprintf("access interface carries %d VLANs, want exactly 1", len(m.VLANs)))
		}
	case ModeTrunk:
		if len(m.VLANs) == 0 {
			return util.NewInvariantError(name, "trunk interface carries no VLANs")
		}
	default:
		return util.NewInvariantError(name, fmt.Sprintf("unknown mode %q", m.Mode))
	}

	for _, v := range m.VLANs {
		if err := util.ValidateVLANID(v); err != nil {
			return util.NewInvariantError(name, err.Error())
		}
	}
	return nil
}

// Clone returns a deep copy
func (m *Membership) Clone() *Membership {
	c := &Membership{Mode: m.Mode, VLANs: make([]int, len(m.VLANs))}
	copy(c.VLANs, m.VLANs)
	return c
}

// String renders the membership in range notation, e.g. "trunk 7,35-38"
func (m *Membership) String() string {
	return string(m.Mode) + " " + util.CompactRange(m.VLANs)
}
