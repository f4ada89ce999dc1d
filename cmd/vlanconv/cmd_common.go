package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newtron-network/vlanconv/pkg/analyze"
	"github.com/newtron-network/vlanconv/pkg/cli"
	"github.com/newtron-network/vlanconv/pkg/util"
)

var interfaceName string // -i, --interface

var commonCmd = &cobra.Command{
	Use:   "common <config-file>",
	Short: "List interfaces sharing VLANs with an interface",
	Long: `Parse VLAN configuration and list every other interface that carries
at least one VLAN of the interface selected with -i. Access interfaces count
with their single untagged VLAN.

Examples:
  vlanconv common -D raisecom -i "port-channel 1" switch.cfg
  vlanconv common -D dlink -i 26 dlink.cfg --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if interfaceName == "" {
			return fmt.Errorf("interface required: use -i <interface> flag")
		}
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

		shared, err := analyze.FromConfig(d, cfg, interfaceName, opts)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch {
		case jsonOutput:
			if shared == nil {
				shared = []analyze.Shared{}
			}
			return writeJSON(w, shared)
		case yamlOutput:
			return writeYAML(w, shared)
		}

		if len(shared) == 0 {
			fmt.Fprintf(w, "No interfaces share VLANs with %s\n", interfaceName)
			return nil
		}
		fmt.Fprintf(w, "Interfaces sharing VLANs with %s:\n\n", cli.Bold(interfaceName))
		t := cli.NewTable(w, "INTERFACE", "SHARED VLANS", "MODE")
		for _, s := range shared {
			t.Row(s.Interface, util.CompactRange(s.VLANs), cli.Mode(string(s.Mode)))
		}
		return t.Flush()
	},
}

func init() {
	commonCmd.Flags().StringVarP(&interfaceName, "interface", "i", "", "Interface to compare against")
}
