// vlanconv - VLAN configuration converter
//
// Reads switch VLAN configuration in a vendor dialect, builds the canonical
// per-interface VLAN membership table, and renders it as Raisecom
// configuration or reports VLAN overlap between interfaces.
//
// Examples:
//
//	vlanconv parse -D raisecom switch.cfg           # Membership table
//	vlanconv parse -D dlink dlink.cfg --yaml > t.yaml
//	vlanconv generate t.yaml                        # Raisecom config from a table
//	vlanconv migrate dlink.cfg                      # D-Link -> Raisecom in one step
//	vlanconv common -D raisecom -i "port-channel 1" switch.cfg
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/newtron-network/vlanconv/pkg/cli"
	"github.com/newtron-network/vlanconv/pkg/dialect"
	"github.com/newtron-network/vlanconv/pkg/dialect/dlink"
	"github.com/newtron-network/vlanconv/pkg/generate"
	"github.com/newtron-network/vlanconv/pkg/settings"
	"github.com/newtron-network/vlanconv/pkg/util"
	"github.com/newtron-network/vlanconv/pkg/version"
)

var (
	// Input selection
	dialectName  string // -D, --dialect
	portConflict string // --port-conflict

	// Generator options
	vlansPerLine    int
	interfaceFormat string

	// Global option flags
	settingsPath string
	verbose      bool
	logFormat    string
	jsonOutput   bool
	yamlOutput   bool

	// Global state
	userSettings *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.Red("Error:"), err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "vlanconv",
	Short:             "VLAN configuration converter",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `vlanconv parses switch VLAN configuration (Raisecom or D-Link syntax)
into a per-interface VLAN membership table, renders tables as Raisecom
configuration and reports interfaces that share VLANs.

Input files may be "-" to read from stdin.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		util.SetLogOutput(cmd.ErrOrStderr())

		var err error
		if settingsPath == "" {
			settingsPath = settings.DefaultSettingsPath()
		}
		userSettings, err = settings.LoadFrom(settingsPath)
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		// Set log level: settings default (warn), verbose on -v
		level := userSettings.GetLogLevel()
		if verbose {
			level = "debug"
		}
		if err := util.SetLogLevel(level); err != nil {
			return err
		}
		util.Debugf("settings loaded from %s", settingsPath)
		switch logFormat {
		case "text":
		case "json":
			util.SetJSONFormat()
		default:
			return fmt.Errorf("unknown log format: %s (valid: text, json)", logFormat)
		}
		if jsonOutput && yamlOutput {
			return fmt.Errorf("--json and --yaml are mutually exclusive")
		}

		// Apply defaults from settings where flags were not given
		if dialectName == "" {
			dialectName = userSettings.GetDialect()
		}
		if portConflict == "" {
			portConflict = userSettings.GetPortConflict()
		}
		if vlansPerLine == 0 {
			vlansPerLine = userSettings.GetVLANsPerLine()
		}
		if interfaceFormat == "" {
			interfaceFormat = userSettings.GetInterfaceFormat()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Settings file (default ~/.vlanconv/settings.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	for _, cmd := range []*cobra.Command{parseCmd, commonCmd} {
		addDialectFlags(cmd)
	}
	migrateCmd.Flags().StringVar(&portConflict, "port-conflict", "", "D-Link port conflict policy: last-write-wins or reject")
	for _, cmd := range []*cobra.Command{generateCmd, migrateCmd} {
		addGenerateFlags(cmd)
	}
	for _, cmd := range []*cobra.Command{parseCmd, commonCmd} {
		addOutputFlags(cmd)
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "convert", Title: "Conversion:"},
		&cobra.Group{ID: "analyze", Title: "Analysis:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{parseCmd, generateCmd, migrateCmd} {
		cmd.GroupID = "convert"
		rootCmd.AddCommand(cmd)
	}
	commonCmd.GroupID = "analyze"
	rootCmd.AddCommand(commonCmd)
	for _, cmd := range []*cobra.Command{settingsCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Fprintln(cmd.OutOrStdout(), "vlanconv dev build (version info is set with -ldflags)")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "vlanconv %s\n", version.Info())
		}
	},
}

// ============================================================================
// Flag Helpers
// ============================================================================

func addDialectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&dialectName, "dialect", "D", "", "Input dialect: raisecom (rc) or dlink")
	cmd.Flags().StringVar(&portConflict, "port-conflict", "", "D-Link port conflict policy: last-write-wins or reject")
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&vlansPerLine, "vlans-per-line", 0, "VLAN IDs per generated line (default 32)")
	cmd.Flags().StringVar(&interfaceFormat, "interface-format", "", `Interface name template (default "giga 1/1/%d")`)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "YAML output")
}

// ============================================================================
// Input / Output Helpers
// ============================================================================

// readInput returns the contents of path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func parserOptions() (dialect.Options, error) {
	policy, err := dlink.ParsePolicy(portConflict)
	if err != nil {
		return dialect.Options{}, err
	}
	return dialect.Options{PortConflict: policy}, nil
}

func selectedDialect() (dialect.Dialect, error) {
	return dialect.Lookup(dialectName)
}

func generateOptions() generate.Options {
	return generate.Options{VLANsPerLine: vlansPerLine, InterfaceFormat: interfaceFormat}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
