package commands

import (
	"context"
	"time"

	"github.com/de-tools/chain-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/chain-atlas/pkg/services/analytics"

	"github.com/spf13/cobra"
)

type KPIsCmd struct {
	sources  sourceFlags
	filters  filterFlags
	reporter *export.Reporter
}

func NewKPIsCmd(reporter *export.Reporter) *cobra.Command {
	kc := &KPIsCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Show headline figures for a dataset",
		RunE:  kc.run,
	}

	kc.sources.register(cmd)
	kc.filters.register(cmd)

	return cmd
}

func (kc *KPIsCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	filter, err := kc.filters.parse()
	if err != nil {
		return err
	}

	result, err := loadRecords(ctx, &kc.sources)
	if err != nil {
		return err
	}

	snap, err := analytics.Snapshot(result.records, filter)
	if err != nil {
		return err
	}

	return kc.reporter.KPIs(snap)
}
