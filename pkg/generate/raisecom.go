// Package generate renders the canonical VLAN membership table as vendor
// configuration text.
package generate

import (
	"fmt"
	"strings"

	"github.com/newtron-network/vlanconv/pkg/model"
	"github.com/newtron-network/vlanconv/pkg/util"
)

// Defaults for Raisecom output
const (
	DefaultVLANsPerLine    = 32
	DefaultInterfaceFormat = "giga 1/1/%d"
)

// Options controls Raisecom generation
type Options struct {
	// VLANsPerLine caps the VLAN IDs on one "create vlan" or
	// "trunk allowed vlan" line.
	VLANsPerLine int
	// InterfaceFormat turns a port number into an interface name
	InterfaceFormat string
}

func (o Options) withDefaults() Options {
	if o.VLANsPerLine <= 0 {
		o.VLANsPerLine = DefaultVLANsPerLine
	}
	if o.InterfaceFormat == "" {
		o.InterfaceFormat = DefaultInterfaceFormat
	}
	return o
}

// InterfaceName returns the Raisecom interface name for port
func (o Options) InterfaceName(port int) string {
	return fmt.Sprintf(o.withDefaults().InterfaceFormat, port)
}

// Raisecom renders t, keyed by port number, as Raisecom configuration:
// the "create vlan" header for every VLAN in use followed by one block per
// port in ascending order.
func Raisecom(t model.Table, opts Options) (string, error) {
	opts = opts.withDefaults()
	if !strings.Contains(opts.InterfaceFormat, "%d") {
		return "", util.NewValidationError(fmt.Sprintf("interface format %q has no %%d verb", opts.InterfaceFormat))
	}

	if err := t.Validate(); err != nil {
		return "", err
	}
	ports, err := t.Ports()
	if err != nil {
		return "", err
	}

	var b strings.Builder

	if vlans := t.AllVLANs(); len(vlans) > 0 {
		for _, chunk := range util.ChunkInts(vlans, opts.VLANsPerLine) {
			fmt.Fprintf(&b, "create vlan %s active\n", util.CompactRange(chunk))
		}
		b.WriteString("!\n")
	}

	for _, p := range ports {
		name := opts.InterfaceName(p.Number)
		if p.Membership.IsAccess() {
			writeAccess(&b, name, p.Membership.VLANs[0])
		} else {
			writeTrunk(&b, name, p.Membership.VLANs, opts.VLANsPerLine)
		}
	}

	util.WithDialect("raisecom").Debugf("generated %d interface blocks", len(ports))
	return b.String(), nil
}

func writeAccess(b *strings.Builder, name string, vlan int) {
	fmt.Fprintf(b, "interface %s\n", name)
	fmt.Fprintf(b, "switchport access vlan %d\n", vlan)
	b.WriteString("storm-control unknown-multicast pps 1024\n")
	b.WriteString("storm-control dlf pps 1024\n")
	b.WriteString("!\n")
}

// writeTrunk emits the first chunk as the "confirm" line and every
// following chunk as an "add" line ahead of "switchport mode trunk".
func writeTrunk(b *strings.Builder, name string, vlans []int, perLine int) {
	fmt.Fprintf(b, "interface %s\n", name)
	for i, chunk := range util.ChunkInts(util.SortedUnique(vlans), perLine) {
		if i == 0 {
			fmt.Fprintf(b, "switchport trunk allowed vlan %s confirm\n", util.CompactRange(chunk))
		} else {
			fmt.Fprintf(b, "switchport trunk allowed vlan add %s\n", util.CompactRange(chunk))
		}
	}
	b.WriteString("switchport mode trunk\n")
	b.WriteString("switchport reject-frame untagged\n")
	b.WriteString("!\n")
}
