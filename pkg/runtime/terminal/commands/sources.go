package commands

import (
	"fmt"

	"github.com/de-tools/chain-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/chain-atlas/pkg/services/registry"

	"github.com/spf13/cobra"
)

type SourcesCmd struct {
	configPath string
	reporter   *export.Reporter
}

func NewSourcesCmd(reporter *export.Reporter) *cobra.Command {
	sc := &SourcesCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List named sources from the sources config",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.configPath, "config", "", "Path to the sources config file")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func (sc *SourcesCmd) run(cmd *cobra.Command, args []string) error {
	reg, err := registry.NewSourceRegistry(sc.configPath)
	if err != nil {
		return fmt.Errorf("failed to read sources config: %w", err)
	}

	profiles, err := reg.GetProfiles()
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no sources defined in %s\n", sc.configPath)
		return nil
	}

	return sc.reporter.Sources(profiles)
}
