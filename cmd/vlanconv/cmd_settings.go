package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newtron-network/vlanconv/pkg/cli"
	"github.com/newtron-network/vlanconv/pkg/settings"
	"github.com/newtron-network/vlanconv/pkg/util"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.vlanconv/settings.yaml.

Settings provide defaults for command flags:
  - dialect:          Input dialect when -D is not specified
  - vlans_per_line:   VLAN IDs per generated line
  - interface_format: Raisecom interface name template
  - port_conflict:    D-Link port conflict policy
  - log_level:        Log level when -v is not specified

Examples:
  vlanconv settings show
  vlanconv settings set dialect dlink
  vlanconv settings set interface_format "gigaethernet 1/1/%d"
  vlanconv settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Settings file: %s\n\n", settingsPath)

		t := cli.NewTable(w, "SETTING", "VALUE")
		for _, key := range settings.Keys {
			value, err := userSettings.Get(key)
			if err != nil {
				return err
			}
			if isDefault(key) {
				value += " " + cli.Dim("(default)")
			}
			t.Row(key, value)
		}
		return t.Flush()
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value. An empty value restores the default.

Examples:
  vlanconv settings set dialect dlink
  vlanconv settings set vlans_per_line 16
  vlanconv settings set port_conflict reject`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting, value := args[0], args[1]

		if err := userSettings.Set(setting, value); err != nil {
			return err
		}
		if err := userSettings.SaveTo(settingsPath); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		util.Infof("saved %s to %s", setting, settingsPath)

		effective, _ := userSettings.Get(setting)
		fmt.Fprintf(cmd.OutOrStdout(), "%s set to: %s\n", setting, effective)
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <setting>",
	Short: "Get a setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := userSettings.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		userSettings.Clear()
		if err := userSettings.SaveTo(settingsPath); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Settings cleared.")
		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), settingsPath)
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsGetCmd, settingsClearCmd, settingsPathCmd)
}

func isDefault(key string) bool {
	switch key {
	case "dialect":
		return userSettings.Dialect == ""
	case "vlans_per_line":
		return userSettings.VLANsPerLine == 0
	case "interface_format":
		return userSettings.InterfaceFormat == ""
	case "port_conflict":
		return userSettings.PortConflict == ""
	case "log_level":
		return userSettings.LogLevel == ""
	}
	return false
}
