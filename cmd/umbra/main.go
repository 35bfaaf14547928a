// Command `umbra` is the end-user CLI for the Umbra daemon.
//
// Umbra is a DNS sinkhole. The CLI inspects and manages its configuration:
// the structured umbra.toml document and, for installations migrating from
// Pi-hole, the legacy flat pihole-FTL.conf file.
//
// Usage:
//
//	umbra show [--all]          - Show the effective configuration
//	umbra get <setting>         - Print one setting by its dotted name
//	umbra init [--path <file>]  - Write a config file with all defaults
//	umbra migrate [--target <file>] - Convert a legacy config to umbra.toml
//	umbra export [--out <file>] - Export a YAML snapshot of the configuration
//
// Examples:
//
//	umbra show                  - Show settings that differ from their defaults
//	umbra get dns.blockingmode  - Print the configured blocking mode
//	umbra migrate               - Convert pihole-FTL.conf to /etc/umbra/umbra.toml
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lc/umbra/internal/buildinfo"
	"github.com/lc/umbra/internal/config"
	"github.com/lc/umbra/internal/filesys"
	"github.com/lc/umbra/internal/proc"
	"github.com/lc/umbra/internal/registry"
)

const daemonName = "umbrad"

func main() {
	provider := config.New()
	checker := &proc.PSChecker{}

	root := &cobra.Command{
		Use:   "umbra",
		Short: "Umbra DNS sinkhole CLI",
		Long: `Umbra is a DNS sinkhole that answers queries for unwanted domains with
blocking replies. This CLI inspects and manages its configuration.`,
	}

	// ---- version command ----
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the Umbra CLI and daemon.`,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("version: %s\n", buildinfo.Version)
			fmt.Printf("commit: %s\n", buildinfo.Commit)
		},
	}

	// ---- show command ----
	var showAll bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration after applying the structured and
legacy files on top of the defaults. By default only settings that
differ from their defaults are listed; --all lists everything.`,
		Example: "umbra show --all",
		RunE: func(_ *cobra.Command, _ []string) error {
			reg, err := provider.Load()
			if err != nil {
				color.Yellow("some settings were invalid and kept their previous values")
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Setting", "Type", "Value", "Origin"})
			table.SetHeaderColor(
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
			)
			table.SetBorder(false)

			n := 0
			for _, it := range reg.Items() {
				if !showAll && it.IsDefault() {
					continue
				}
				table.Append([]string{it.Name(), it.Kind.String(), it.Value.String(), it.Origin().String()})
				n++
			}
			if n == 0 {
				color.Yellow("All settings are at their defaults. Use --all to list them.")
				return nil
			}
			table.Render()
			return nil
		},
	}
	showCmd.Flags().BoolVar(&showAll, "all", false, "list every setting, including defaults")

	// ---- get command ----
	getCmd := &cobra.Command{
		Use:     "get <setting>",
		Short:   "Print one setting by its dotted name",
		Example: "umbra get dns.blockingmode",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			reg, _ := provider.Load()
			it, ok := reg.ByName(args[0])
			if !ok {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			fmt.Println(it.Value.String())
			return nil
		},
	}

	// ---- init command ----
	var initPath string
	initCmd := &cobra.Command{
		Use:     "init",
		Short:   "Write a config file with all defaults",
		Long:    `Write a structured configuration file containing every setting at its default.`,
		Example: "umbra init --path ./umbra.toml",
		RunE: func(_ *cobra.Command, _ []string) error {
			reg := registry.New()
			if err := config.Write(filesys.OS(), initPath, reg); err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Printf("✓ Wrote default configuration to ")
			color.New(color.FgHiGreen, color.Bold).Printf("%s\n", initPath)
			return nil
		},
	}
	initCmd.Flags().StringVar(&initPath, "path", config.SystemStructuredPath, "where to write the config file")

	// ---- migrate command ----
	var migrateTarget string
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert a legacy config to the structured format",
		Long: `Read the legacy flat pihole-FTL.conf file and write the equivalent
structured configuration. The legacy file is left untouched.`,
		Example: "umbra migrate --target /etc/umbra/umbra.toml",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, source, err := provider.Migrate(migrateTarget)
			if err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Printf("✓ Migrated ")
			color.New(color.FgHiGreen, color.Bold).Printf("%s ", source)
			color.New(color.FgGreen, color.Bold).Printf("to ")
			color.New(color.FgHiGreen, color.Bold).Printf("%s\n", migrateTarget)

			if checker.IsRunning(daemonName) {
				color.Yellow("%s is running; restart it to pick up the migrated configuration", daemonName)
			}
			return nil
		},
	}
	migrateCmd.Flags().StringVar(&migrateTarget, "target", config.SystemStructuredPath, "where to write the migrated config")

	// ---- export command ----
	var exportOut string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export a YAML snapshot of the configuration",
		Long: `Export the effective configuration as a YAML snapshot, for attaching to
bug reports or feeding into provisioning tools.`,
		Example: "umbra export --out snapshot.yaml",
		RunE: func(_ *cobra.Command, _ []string) error {
			reg, _ := provider.Load()
			data, err := yaml.Marshal(newExportDoc(reg))
			if err != nil {
				return fmt.Errorf("encoding snapshot: %w", err)
			}
			if exportOut == "-" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(exportOut, data, 0o644); err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Printf("✓ Exported configuration snapshot to ")
			color.New(color.FgHiGreen, color.Bold).Printf("%s\n", exportOut)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&exportOut, "out", "-", `output file ("-" for stdout)`)

	root.AddCommand(showCmd, getCmd, initCmd, migrateCmd, exportCmd, versionCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// exportDoc is the YAML snapshot shape. The ID makes individual snapshots
// distinguishable when several end up attached to the same report.
type exportDoc struct {
	ID        string       `yaml:"id"`
	Version   string       `yaml:"version"`
	Generated time.Time    `yaml:"generated"`
	Items     []exportItem `yaml:"items"`
}

type exportItem struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Value   string `yaml:"value"`
	Default string `yaml:"default"`
	Origin  string `yaml:"origin"`
}

func newExportDoc(reg *registry.Registry) exportDoc {
	doc := exportDoc{
		ID:        uuid.NewString(),
		Version:   buildinfo.Version,
		Generated: time.Now().UTC(),
	}
	for _, it := range reg.Items() {
		doc.Items = append(doc.Items, exportItem{
			Name:    it.Name(),
			Type:    it.Kind.String(),
			Value:   it.Value.String(),
			Default: it.Default.String(),
			Origin:  it.Origin().String(),
		})
	}
	return doc
}
