package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "INTERFACE", "MODE", "VLANS")
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty table wrote %q", buf.String())
	}
}

func TestTable_Rows(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "INTERFACE", "MODE", "VLANS")
	tbl.Row("port-channel 1", "trunk", "7,14,35-38")
	tbl.Row("1", "access", "114")
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "---------") {
		t.Errorf("divider line = %q", lines[1])
	}
	// columns are aligned: MODE starts at the same offset on every line
	col := strings.Index(lines[0], "MODE")
	if strings.Index(lines[2], "trunk") != col || strings.Index(lines[3], "access") != col {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}

func TestTable_Prefix(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "A").WithPrefix("  ")
	tbl.Row("x")
	tbl.Flush()
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("line %q missing prefix", line)
		}
	}
}
