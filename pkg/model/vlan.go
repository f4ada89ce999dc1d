package model

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/newtron-network/vlanconv/pkg/util"
)

// Table maps interface names to their VLAN membership.
// Names are opaque; each dialect keeps its own naming convention.
type Table map[string]*Membership

// Names returns the interface names in natural order
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	util.SortInterfaceNames(names)
	return names
}

// Lookup finds an interface by exact name, then by normalized name
func (t Table) Lookup(name string) (string, *Membership, bool) {
	if m, ok := t[name]; ok {
		return name, m, true
	}
	want := util.NormalizeInterfaceName(name)
	for n, m := range t {
		if util.NormalizeInterfaceName(n) == want {
			return n, m, true
		}
	}
	return "", nil, false
}

// Port is a numbered interface with its membership
type Port struct {
	Number     int
	Membership *Membership
}

// Ports returns the table entries in ascending port order. Every name must
// be a decimal port number, as produced by the D-Link parser.
func (t Table) Ports() ([]Port, error) {
	ports := make([]Port, 0, len(t))
	for name, m := range t {
		n, err := strconv.Atoi(name)
		if err != nil || n < 1 {
			return nil, util.NewInvariantError(name, "interface name is not a port number")
		}
		ports = append(ports, Port{Number: n, Membership: m})
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i].Number < ports[j].Number })
	return ports, nil
}

// AllVLANs returns the ascending union of every interface's VLANs
func (t Table) AllVLANs() []int {
	seen := make(map[int]bool)
	var vlans []int
	for _, m := range t {
		for _, v := range m.VLANs {
			if !seen[v] {
				seen[v] = true
				vlans = append(vlans, v)
			}
		}
	}
	sort.Ints(vlans)
	return vlans
}

// Validate checks every membership invariant
func (t Table) Validate() error {
	for _, name := range t.Names() {
		m := t[name]
		if m == nil {
			return util.NewInvariantError(name, "missing membership")
		}
		if err := m.Validate(name); err != nil {
			return err
		}
	}
	return nil
}

// Normalize sorts and de-duplicates every trunk VLAN list
func (t Table) Normalize() {
	for _, m := range t {
		if m != nil {
			m.Normalize()
		}
	}
}

// Rename returns a copy of t with every name passed through fn.
// Two names mapping to the same result is an error.
func (t Table) Rename(fn func(string) string) (Table, error) {
	out := make(Table, len(t))
	for name, m := range t {
		renamed := fn(name)
		if _, dup := out[renamed]; dup {
			return nil, fmt.Errorf("interfaces collide after renaming to %q", renamed)
		}
		out[renamed] = m.Clone()
	}
	return out, nil
}

// Equal reports whether two tables hold the same memberships
func (t Table) Equal(other Table) bool {
	if len(t) != len(other) {
		return false
	}
	for name, m := range t {
		o, ok := other[name]
		if !ok || o.Mode != m.Mode || len(o.VLANs) != len(m.VLANs) {
			return false
		}
		for i := range m.VLANs {
			if m.VLANs[i] != o.VLANs[i] {
				return false
			}
		}
	}
	return true
}
