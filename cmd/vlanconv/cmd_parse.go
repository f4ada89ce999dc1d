package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/newtron-network/vlanconv/pkg/cli"
	"github.com/newtron-network/vlanconv/pkg/dialect"
	"github.com/newtron-network/vlanconv/pkg/model"
	"github.com/newtron-network/vlanconv/pkg/util"
)

var parseCmd = &cobra.Command{
	Use:   "parse <config-file>",
	Short: "Parse a switch config into the VLAN membership table",
	Long: `Parse VLAN configuration in the selected dialect and print the
per-interface membership table.

The --yaml output can be edited and fed back to "vlanconv generate".

Examples:
  vlanconv parse -D raisecom switch.cfg
  vlanconv parse -D dlink dlink.cfg --yaml > table.yaml
  cat switch.cfg | vlanconv parse -D rc - --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := selectedDialect()
		if err != nil {
			return err
		}
		opts, err := parserOptions()
		if err != nil {
			return err
		}
		cfg, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		table, err := dialect.Parse(d, cfg, opts)
		if err != nil {
			return err
		}
		util.WithDialect(d.String()).Infof("parsed %d interfaces from %s", len(table), args[0])

		return printTable(cmd.OutOrStdout(), table)
	},
}

func printTable(w io.Writer, table model.Table) error {
	switch {
	case jsonOutput:
		return writeJSON(w, table)
	case yamlOutput:
		return writeYAML(w, table)
	}

	if len(table) == 0 {
		fmt.Fprintln(w, "No VLAN memberships found")
		return nil
	}

	t := cli.NewTable(w, "INTERFACE", "VLANS", "MODE")
	for _, name := range table.Names() {
		m := table[name]
		t.Row(name, util.CompactRange(m.VLANs), cli.Mode(string(m.Mode)))
	}
	return t.Flush()
}
