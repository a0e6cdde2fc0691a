package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/halcyon-tools/ytfetch/registry"
)

// NewToolsCmd creates the "tools" command group for registry discovery.
// The registry manifest is descriptive metadata only; these commands
// read it, they never dispatch through it.
func NewToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the tool registry manifest",
	}
	cmd.PersistentFlags().String("manifest", "tools.json", "Path to the registry manifest")

	cmd.AddCommand(newToolsListCmd())
	cmd.AddCommand(newToolsInspectCmd())

	return cmd
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tools declared in the manifest",
		Args:  cobra.NoArgs,
		RunE:  runToolsList,
	}
}

func runToolsList(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tVERSION\tCOMMAND\tDESCRIPTION")
	for _, spec := range reg.List() {
		version := strings.TrimSpace(spec.Version)
		if version == "" {
			version = "-"
		}
		command := spec.Command
		if len(spec.Args) > 0 {
			command += " " + strings.Join(spec.Args, " ")
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", spec.Name, version, command, spec.Description)
	}
	return writer.Flush()
}

func newToolsInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <name>",
		Short: "Show the full spec of one tool",
		Args:  cobra.ExactArgs(1),
		RunE:  runToolsInspect,
	}
}

func runToolsInspect(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	name := args[0]
	spec, ok := reg.Get(name)
	if !ok {
		return exitError(exitFailure, "tool %q is not declared in the manifest", name)
	}

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return exitError(exitFailure, "encoding tool spec: %v", err)
	}
	_, _ = cmd.OutOrStdout().Write(append(data, '\n'))
	return nil
}

func loadRegistry(cmd *cobra.Command) (*registry.Registry, error) {
	path, _ := cmd.Flags().GetString("manifest")
	reg, err := registry.Load(path)
	if err != nil {
		return nil, exitError(exitFailure, "%v", err)
	}
	return reg, nil
}
