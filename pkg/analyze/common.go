// Package analyze reports VLAN overlap between interfaces of one table.
package analyze

import (
	"fmt"

	"github.com/newtron-network/vlanconv/pkg/dialect"
	"github.com/newtron-network/vlanconv/pkg/model"
	"github.com/newtron-network/vlanconv/pkg/util"
)

// Shared is an interface that carries some of the target's VLANs
type Shared struct {
	Interface string     `json:"interface" yaml:"interface"`
	Mode      model.Mode `json:"mode" yaml:"mode"`
	VLANs     []int      `json:"vlans" yaml:"vlans"`
}

// CommonVLANs intersects the VLANs of target with every other interface
// in t. Access interfaces contribute their single untagged VLAN. Only
// non-empty intersections are reported, in natural interface order.
//
// The target must exist in t; callers are expected to check it first, a
// missing target returns a *util.LookupError.
func CommonVLANs(t model.Table, target string) ([]Shared, error) {
	name, tm, ok := t.Lookup(target)
	if !ok || tm == nil {
		return nil, util.NewLookupError("interface", target)
	}

	var result []Shared
	for _, other := range t.Names() {
		if other == name {
			continue
		}
		m := t[other]
		if m == nil {
			continue
		}
		common := util.IntersectInts(tm.VLANs, m.VLANs)
		if len(common) == 0 {
			continue
		}
		result = append(result, Shared{Interface: other, Mode: m.Mode, VLANs: common})
	}

	util.WithFields(map[string]interface{}{
		"interface": name,
		"shared":    len(result),
	}).Debug("common VLAN scan done")
	return result, nil
}

// FromConfig parses cfg in the given dialect and reports the interfaces
// sharing VLANs with target.
func FromConfig(d dialect.Dialect, cfg, target string, opts dialect.Options) ([]Shared, error) {
	t, err := dialect.Parse(d, cfg, opts)
	if err != nil {
		return nil, err
	}
	shared, err := CommonVLANs(t, target)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s config: %w", d, err)
	}
	return shared, nil
}
