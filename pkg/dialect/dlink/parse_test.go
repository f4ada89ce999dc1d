package dlink

import (
	"errors"
	"reflect"
	"testing"

	"github.com/newtron-network/vlanconv/pkg/model"
	"github.com/newtron-network/vlanconv/pkg/util"
)

const dlinkCfg = `create vlan 11 tag 11
config vlan 11 add tagged 26-28 advertisement disable
create vlan vlan-52 tag 52
config vlan vlan-52 add tagged 14,26-28 advertisement disable
create vlan 114 tag 114
config vlan 114 add tagged 1,25-26
config vlan 114 add untagged 24 advertisement disable
`

func TestParse(t *testing.T) {
	got, err := Parse(dlinkCfg, Options{})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	want := model.Table{
		"1":  {Mode: model.ModeTrunk, VLANs: []int{114}},
		"14": {Mode: model.ModeTrunk, VLANs: []int{52}},
		"24": {Mode: model.ModeAccess, VLANs: []int{114}},
		"25": {Mode: model.ModeTrunk, VLANs: []int{114}},
		"26": {Mode: model.ModeTrunk, VLANs: []int{11, 52, 114}},
		"27": {Mode: model.ModeTrunk, VLANs: []int{11, 52}},
		"28": {Mode: model.ModeTrunk, VLANs: []int{11, 52}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestParse_TaggedSetsSortedAndDeduplicated(t *testing.T) {
	cfg := `create vlan b tag 300
create vlan a tag 20
config vlan b add tagged 5
config vlan a add tagged 5
config vlan b add tagged 5
`
	got, err := Parse(cfg, Options{})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if want := []int{20, 300}; !reflect.DeepEqual(got["5"].VLANs, want) {
		t.Errorf("port 5 VLANs = %v, want %v", got["5"].VLANs, want)
	}
}

func TestParse_IgnoresUnrelatedLines(t *testing.T) {
	cfg := `# DLINK config
config vlan default delete 1-28
config vlan 11 advertisement enable
create vlan 11 tag 11
enable loopdetect
config vlan 11 add tagged 3
`
	got, err := Parse(cfg, Options{})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(got) != 1 || got["3"] == nil {
		t.Errorf("Parse() = %v, want only port 3", got)
	}
}

func TestParse_UnknownVLANName(t *testing.T) {
	cfg := `create vlan 11 tag 11
config vlan vlan-52 add tagged 14
create vlan vlan-52 tag 52
`
	got, err := Parse(cfg, Options{})
	if got != nil {
		t.Errorf("Parse() returned a partial table: %v", got)
	}
	if !errors.Is(err, util.ErrLookup) {
		t.Fatalf("Parse() error = %v, want ErrLookup", err)
	}
	var le *util.LookupError
	if !errors.As(err, &le) {
		t.Fatalf("error should be *LookupError, got %T", err)
	}
	if le.Name != "vlan-52" || le.Line != 2 {
		t.Errorf("LookupError = %+v, want name vlan-52 on line 2", le)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		cfg      string
		sentinel error
		line     int
	}{
		{
			name:     "bad vlan id",
			cfg:      "create vlan x tag 4095\n",
			sentinel: util.ErrParse,
			line:     1,
		},
		{
			name:     "create without tag",
			cfg:      "create vlan x\n",
			sentinel: util.ErrParse,
			line:     1,
		},
		{
			name:     "bad port list",
			cfg:      "create vlan x tag 10\nconfig vlan x add tagged 5-a\n",
			sentinel: util.ErrParse,
			line:     2,
		},
		{
			name:     "huge port range",
			cfg:      "create vlan x tag 10\nconfig vlan x add tagged 1-2000000000\n",
			sentinel: util.ErrParse,
			line:     2,
		},
		{
			name:     "port above ceiling",
			cfg:      "create vlan x tag 10\nconfig vlan x add untagged 4097\n",
			sentinel: util.ErrParse,
			line:     2,
		},
		{
			name:     "huge vlan tag",
			cfg:      "create vlan x tag 2000000000\n",
			sentinel: util.ErrParse,
			line:     1,
		},
		{
			name:     "missing port list",
			cfg:      "create vlan x tag 10\nconfig vlan x add untagged\n",
			sentinel: util.ErrParse,
			line:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.cfg, Options{})
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.sentinel)
			}
			var pe *util.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error should be *ParseError, got %T", err)
			}
			if pe.Line != tt.line {
				t.Errorf("ParseError.Line = %d, want %d", pe.Line, tt.line)
			}
		})
	}
}

const conflictCfg = `create vlan 11 tag 11
create vlan 114 tag 114
config vlan 11 add tagged 24
config vlan 114 add untagged 24
`

func TestParse_PortConflictLastWriteWins(t *testing.T) {
	got, err := Parse(conflictCfg, Options{PortConflict: LastWriteWins})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	want := &model.Membership{Mode: model.ModeAccess, VLANs: []int{114}}
	if !reflect.DeepEqual(got["24"], want) {
		t.Errorf("port 24 = %v, want %v", got["24"], want)
	}

	// tagged after untagged replaces the access VLAN with a fresh trunk set
	reversed := `create vlan 11 tag 11
create vlan 114 tag 114
config vlan 114 add untagged 24
config vlan 11 add tagged 24
`
	got, err = Parse(reversed, Options{})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	want = &model.Membership{Mode: model.ModeTrunk, VLANs: []int{11}}
	if !reflect.DeepEqual(got["24"], want) {
		t.Errorf("port 24 = %v, want %v", got["24"], want)
	}
}

func TestParse_PortConflictReject(t *testing.T) {
	_, err := Parse(conflictCfg, Options{PortConflict: RejectConflicts})
	if !errors.Is(err, util.ErrInvariant) {
		t.Fatalf("Parse() error = %v, want ErrInvariant", err)
	}

	twoAccess := `create vlan 11 tag 11
create vlan 114 tag 114
config vlan 11 add untagged 24
config vlan 114 add untagged 24
`
	if _, err := Parse(twoAccess, Options{PortConflict: RejectConflicts}); !errors.Is(err, util.ErrInvariant) {
		t.Errorf("Parse() error = %v, want ErrInvariant", err)
	}

	// Re-asserting the same untagged VLAN is accepted under both policies
	repeat := `create vlan 114 tag 114
config vlan 114 add untagged 24
config vlan 114 add untagged 24
`
	if _, err := Parse(repeat, Options{PortConflict: RejectConflicts}); err != nil {
		t.Errorf("Parse() unexpected error: %v", err)
	}
}

func TestParse_UntaggedPortList(t *testing.T) {
	cfg := `create vlan users tag 200
config vlan users add untagged 1-3
`
	got, err := Parse(cfg, Options{})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	for _, port := range []string{"1", "2", "3"} {
		if v, ok := got[port].AccessVLAN(); !ok || v != 200 {
			t.Errorf("port %s = %v, want access 200", port, got[port])
		}
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", LastWriteWins, false},
		{"last-write-wins", LastWriteWins, false},
		{"REJECT", RejectConflicts, false},
		{"merge", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, %v; want %q, wantErr %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestParser_UsesOptions(t *testing.T) {
	p := New(Options{PortConflict: RejectConflicts})
	if p.Name() != "dlink" {
		t.Errorf("Name() = %q", p.Name())
	}
	if _, err := p.Parse(conflictCfg); !errors.Is(err, util.ErrInvariant) {
		t.Errorf("Parser.Parse() error = %v, want ErrInvariant", err)
	}
	if _, err := New(Options{}).Parse(conflictCfg); err != nil {
		t.Errorf("default parser should use last-write-wins: %v", err)
	}
}
