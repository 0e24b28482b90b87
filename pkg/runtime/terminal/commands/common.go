package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/de-tools/chain-atlas/pkg/services/dataset"
	"github.com/de-tools/chain-atlas/pkg/services/registry"
	"github.com/de-tools/chain-atlas/pkg/services/schema"
	"github.com/spf13/cobra"
)

// sourceFlags are shared by every command that loads a dataset. A
// dataset is addressed either directly with --source or by a named
// entry from the sources config with --profile and --config.
type sourceFlags struct {
	source     string
	profile    string
	configPath string
	schemaPath string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.source, "source", "", "Dataset path, URL or s3:// URI")
	cmd.Flags().StringVar(&s.profile, "profile", "", "Named source from the sources config")
	cmd.Flags().StringVar(&s.configPath, "config", "", "Path to the sources config file")
	cmd.Flags().StringVar(&s.schemaPath, "schema", "", "Path to a schema profile file")
}

func (s *sourceFlags) resolve() (domain.Source, *schema.Profile, error) {
	schemaPath := s.schemaPath

	var src domain.Source
	switch {
	case s.source != "":
		src = domain.Source{Kind: domain.KindForLocation(s.source), Location: s.source}
	case s.profile != "":
		if s.configPath == "" {
			return domain.Source{}, nil, errors.New("--config is required when --profile is set")
		}
		reg, err := registry.NewSourceRegistry(s.configPath)
		if err != nil {
			return domain.Source{}, nil, fmt.Errorf("failed to read sources config: %w", err)
		}
		p, err := reg.GetProfile(s.profile)
		if err != nil {
			return domain.Source{}, nil, err
		}
		src = p.Source()
		if schemaPath == "" {
			schemaPath = p.Schema
		}
	default:
		return domain.Source{}, nil, errors.New("either --source or --profile is required")
	}

	if schemaPath == "" {
		return src, schema.DefaultProfile(), nil
	}
	profile, err := schema.LoadProfile(schemaPath)
	if err != nil {
		return domain.Source{}, nil, err
	}
	return src, profile, nil
}

// filterFlags narrow the record set before aggregation.
type filterFlags struct {
	from    string
	to      string
	regions []string
	modes   []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Keep orders on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Keep orders before this date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&f.regions, "regions", nil, "Keep only these order regions")
	cmd.Flags().StringSliceVar(&f.modes, "modes", nil, "Keep only these shipping modes")
}

func (f *filterFlags) parse() (domain.Filter, error) {
	filter := domain.Filter{Regions: f.regions, Modes: f.modes}

	if f.from != "" {
		t, err := time.Parse("2006-01-02", f.from)
		if err != nil {
			return domain.Filter{}, fmt.Errorf("invalid --from date %q, expected YYYY-MM-DD", f.from)
		}
		filter.From = &t
	}
	if f.to != "" {
		t, err := time.Parse("2006-01-02", f.to)
		if err != nil {
			return domain.Filter{}, fmt.Errorf("invalid --to date %q, expected YYYY-MM-DD", f.to)
		}
		filter.To = &t
	}

	return filter, nil
}

type datasetResult struct {
	table   *domain.RawTable
	profile *schema.Profile
	records []domain.CleanRecord
	quality *domain.QualityReport
}

// loadRecords runs the load and validate half of the pipeline that
// every analytics command starts with.
func loadRecords(ctx context.Context, flags *sourceFlags) (*datasetResult, error) {
	src, profile, err := flags.resolve()
	if err != nil {
		return nil, err
	}

	loader := dataset.NewLoader(dataset.Options{})
	table, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	records, quality, err := schema.NewNormalizer(profile).Normalize(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to validate dataset: %w", err)
	}

	return &datasetResult{
		table:   table,
		profile: profile,
		records: records,
		quality: quality,
	}, nil
}
