package model

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/newtron-network/vlanconv/pkg/util"
)

// ===================== Membership Tests =====================

func TestNewTrunk(t *testing.T) {
	m := NewTrunk(114, 11, 52, 11)
	if !m.IsTrunk() || m.IsAccess() {
		t.Fatalf("NewTrunk mode = %q", m.Mode)
	}
	if want := []int{11, 52, 114}; !reflect.DeepEqual(m.VLANs, want) {
		t.Errorf("VLANs = %v, want %v", m.VLANs, want)
	}
}

func TestMembership_AddTaggedKeepsFirstAppendOrder(t *testing.T) {
	m := &Membership{Mode: ModeTrunk}
	for _, v := range []int{114, 11, 114, 52} {
		m.AddTagged(v)
	}
	if want := []int{114, 11, 52}; !reflect.DeepEqual(m.VLANs, want) {
		t.Errorf("VLANs before Normalize = %v, want %v", m.VLANs, want)
	}
	m.Normalize()
	if want := []int{11, 52, 114}; !reflect.DeepEqual(m.VLANs, want) {
		t.Errorf("VLANs after Normalize = %v, want %v", m.VLANs, want)
	}
}

func TestMembership_AccessVLAN(t *testing.T) {
	if v, ok := NewAccess(2009).AccessVLAN(); !ok || v != 2009 {
		t.Errorf("AccessVLAN() = %d, %v; want 2009, true", v, ok)
	}
	if _, ok := NewTrunk(1).AccessVLAN(); ok {
		t.Errorf("AccessVLAN() on trunk should report false")
	}
}

func TestMembership_Validate(t *testing.T) {
	tests := []struct {
		name    string
		m       *Membership
		wantErr bool
	}{
		{"access ok", NewAccess(10), false},
		{"trunk ok", NewTrunk(10, 20), false},
		{"access two vlans", &Membership{Mode: ModeAccess, VLANs: []int{1, 2}}, true},
		{"access no vlans", &Membership{Mode: ModeAccess}, true},
		{"trunk empty", &Membership{Mode: ModeTrunk}, true},
		{"vlan out of range", NewTrunk(4095), true},
		{"vlan zero", NewAccess(0), true},
		{"unknown mode", &Membership{Mode: "routed", VLANs: []int{1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate("gigaethernet 1/1/1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, util.ErrInvariant) {
				t.Errorf("Validate() error = %v, want ErrInvariant", err)
			}
		})
	}
}

func TestMembership_String(t *testing.T) {
	m := NewTrunk(7, 14, 35, 36, 37, 38)
	if got := m.String(); got != "trunk 7,14,35-38" {
		t.Errorf("String() = %q", got)
	}
}

func TestMembership_Clone(t *testing.T) {
	m := NewTrunk(1, 2)
	c := m.Clone()
	c.VLANs[0] = 99
	if m.VLANs[0] != 1 {
		t.Errorf("Clone shares the VLAN slice")
	}
}

// ===================== Table Tests =====================

func sampleTable() Table {
	return Table{
		"26": NewTrunk(11, 52, 114),
		"24": NewAccess(114),
		"1":  NewTrunk(114),
		"14": NewTrunk(52),
	}
}

func TestTable_Names(t *testing.T) {
	got := sampleTable().Names()
	want := []string{"1", "14", "24", "26"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestTable_Ports(t *testing.T) {
	ports, err := sampleTable().Ports()
	if err != nil {
		t.Fatalf("Ports() error: %v", err)
	}
	var nums []int
	for _, p := range ports {
		nums = append(nums, p.Number)
	}
	if want := []int{1, 14, 24, 26}; !reflect.DeepEqual(nums, want) {
		t.Errorf("port order = %v, want %v", nums, want)
	}

	_, err = Table{"port-channel 1": NewTrunk(1)}.Ports()
	if !errors.Is(err, util.ErrInvariant) {
		t.Errorf("Ports() on named interfaces error = %v, want ErrInvariant", err)
	}
}

func TestTable_AllVLANs(t *testing.T) {
	got := sampleTable().AllVLANs()
	if want := []int{11, 52, 114}; !reflect.DeepEqual(got, want) {
		t.Errorf("AllVLANs() = %v, want %v", got, want)
	}
	if got := (Table{}).AllVLANs(); len(got) != 0 {
		t.Errorf("AllVLANs() on empty table = %v", got)
	}
}

func TestTable_Lookup(t *testing.T) {
	tbl := Table{"port-channel 1": NewTrunk(7)}

	name, m, ok := tbl.Lookup("Port-Channel  1")
	if !ok || name != "port-channel 1" || m == nil {
		t.Errorf("Lookup() = %q, %v, %v", name, m, ok)
	}
	if _, _, ok := tbl.Lookup("port-channel 2"); ok {
		t.Errorf("Lookup() found a missing interface")
	}
}

func TestTable_Validate(t *testing.T) {
	if err := sampleTable().Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
	bad := sampleTable()
	bad["24"].VLANs = append(bad["24"].VLANs, 115)
	if err := bad.Validate(); !errors.Is(err, util.ErrInvariant) {
		t.Errorf("Validate() error = %v, want ErrInvariant", err)
	}
}

func TestTable_RenameAndEqual(t *testing.T) {
	tbl := Table{"1": NewTrunk(5), "2": NewAccess(6)}
	renamed, err := tbl.Rename(func(n string) string { return "giga 1/1/" + n })
	if err != nil {
		t.Fatalf("Rename() error: %v", err)
	}
	want := Table{"giga 1/1/1": NewTrunk(5), "giga 1/1/2": NewAccess(6)}
	if !renamed.Equal(want) {
		t.Errorf("Rename() = %v, want %v", renamed, want)
	}
	if renamed.Equal(tbl) {
		t.Errorf("Equal() should compare names")
	}

	_, err = tbl.Rename(func(string) string { return "same" })
	if err == nil {
		t.Errorf("Rename() should fail on colliding names")
	}
}

func TestDecodeTable(t *testing.T) {
	doc := `
"26": {mode: trunk, vlans: [114, 11, 52, 11]}
"24": {mode: access, vlans: [114]}
`
	tbl, err := DecodeTable([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeTable() error: %v", err)
	}
	want := Table{"26": NewTrunk(11, 52, 114), "24": NewAccess(114)}
	if !tbl.Equal(want) {
		t.Errorf("DecodeTable() = %v, want %v", tbl, want)
	}

	jsonDoc := `{"1": {"mode": "trunk", "vlans": [7]}}`
	if _, err := DecodeTable([]byte(jsonDoc)); err != nil {
		t.Errorf("DecodeTable() should accept JSON: %v", err)
	}

	if _, err := DecodeTable([]byte(`"1": {mode: access, vlans: [1, 2]}`)); !errors.Is(err, util.ErrInvariant) {
		t.Errorf("DecodeTable() error = %v, want ErrInvariant", err)
	}
}

func TestLoadTable_RoundTrip(t *testing.T) {
	tbl := sampleTable()
	data, err := tbl.EncodeYAML()
	if err != nil {
		t.Fatalf("EncodeYAML() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "table.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error: %v", err)
	}
	if !loaded.Equal(tbl) {
		t.Errorf("LoadTable() = %v, want %v", loaded, tbl)
	}

	if _, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("LoadTable() should fail for a missing file")
	}
}
