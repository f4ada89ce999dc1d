package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newtron-network/vlanconv/pkg/dialect/dlink"
	"github.com/newtron-network/vlanconv/pkg/generate"
	"github.com/newtron-network/vlanconv/pkg/model"
	"github.com/newtron-network/vlanconv/pkg/util"
)

var outputFile string

var generateCmd = &cobra.Command{
	Use:   "generate <table-file>",
	Short: "Render a stored membership table as Raisecom config",
	Long: `Render a YAML or JSON membership table (as written by "vlanconv parse
--yaml") as Raisecom configuration. Interfaces must be port numbers; each
port is named with --interface-format.

Examples:
  vlanconv generate table.yaml
  vlanconv generate table.yaml --interface-format "gigaethernet 1/1/%d" -o raisecom.cfg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		table, err := model.DecodeTable([]byte(data))
		if err != nil {
			return err
		}
		return writeRaisecom(cmd, table)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate <dlink-config>",
	Short: "Convert D-Link VLAN config to Raisecom config",
	Long: `Parse D-Link VLAN configuration and render the resulting membership
table as Raisecom configuration in one step.

Examples:
  vlanconv migrate dlink.cfg
  vlanconv migrate dlink.cfg --port-conflict reject -o raisecom.cfg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := dlink.ParsePolicy(portConflict)
		if err != nil {
			return err
		}
		cfg, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		table, err := dlink.Parse(cfg, dlink.Options{PortConflict: policy})
		if err != nil {
			return fmt.Errorf("parsing dlink config: %w", err)
		}
		return writeRaisecom(cmd, table)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, migrateCmd} {
		cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write config to file instead of stdout")
	}
}

func writeRaisecom(cmd *cobra.Command, table model.Table) error {
	text, err := generate.Raisecom(table, generateOptions())
	if err != nil {
		return fmt.Errorf("generating raisecom config: %w", err)
	}

	if outputFile == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		return err
	}
	util.WithField("output", outputFile).Infof("wrote %d raisecom interface blocks", len(table))
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outputFile)
	return nil
}
