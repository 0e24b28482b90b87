package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/chain-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/chain-atlas/pkg/services/analytics"

	"github.com/spf13/cobra"
)

type ProfileCmd struct {
	sources  sourceFlags
	reporter *export.Reporter
}

func NewProfileCmd(reporter *export.Reporter) *cobra.Command {
	pc := &ProfileCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile the columns of a dataset and report its quality",
		RunE:  pc.run,
	}

	pc.sources.register(cmd)

	return cmd
}

func (pc *ProfileCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := loadRecords(ctx, &pc.sources)
	if err != nil {
		return err
	}

	cols := analytics.ProfileColumns(result.table, result.profile.DateLayouts)
	if err := pc.reporter.Columns(cols); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout())
	return pc.reporter.Quality(result.quality)
}
