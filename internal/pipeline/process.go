package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Nowhitestar/process-builder-data/internal"
	"github.com/Nowhitestar/process-builder-data/internal/config"
	"github.com/Nowhitestar/process-builder-data/internal/fetch"
	"github.com/Nowhitestar/process-builder-data/internal/storage"
	"github.com/Nowhitestar/process-builder-data/internal/util"
)

type ProcessingService struct {
	db        *storage.DB
	cfg       config.Config
	avatars   fetch.AvatarFetcher
	describer fetch.DescriptionFetcher
}

func NewProcessingService(db *storage.DB, cfg config.Config, avatars fetch.AvatarFetcher, describer fetch.DescriptionFetcher) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg, avatars: avatars, describer: describer}
}

type Options struct {
	InputPath string
	OutputDir string
	Verbose   bool
	Quiet     bool
	SkipLogos bool
	RateLimit time.Duration
}

type Summary struct {
	Projects        int
	Sectors         int
	LogosDownloaded int
	Duration        time.Duration
}

// Run executes one full processing pass: read rows, emit one document per
// row, render the sector maps, then repair path spaces. Input problems are
// fatal; per-row fetch failures are not.
func (s *ProcessingService) Run(ctx context.Context, opts Options) (Summary, error) {
	start := time.Now()

	table, err := ReadTable(opts.InputPath)
	if err != nil {
		return Summary{}, fmt.Errorf("read input: %w", err)
	}
	if len(table.Rows) == 0 {
		return Summary{}, fmt.Errorf("no data rows in %s", opts.InputPath)
	}

	projectsDir := filepath.Join(opts.OutputDir, "data", "projects")
	mapsDir := filepath.Join(opts.OutputDir, "data", "maps")
	for _, dir := range []string{projectsDir, mapsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Summary{}, err
		}
	}

	normalizer := &Normalizer{
		avatars:   s.avatars,
		describer: s.describer,
		pacer:     fetch.NewPacer(opts.RateLimit),
		skipLogos: opts.SkipLogos,
		verbose:   opts.Verbose && !opts.Quiet,
	}
	acc := NewSectorAccumulator()
	ids := newIDAllocator()

	var bar *progressbar.ProgressBar
	if !opts.Quiet && !opts.Verbose {
		bar = progressbar.Default(int64(len(table.Rows)), "processing projects")
	}

	logos := 0
	runProjects := make([]internal.RunProject, 0, len(table.Rows))
	for i, row := range table.Rows {
		fields := ExtractFields(table, row)

		id, collided := ids.allocate(util.Slugify(fields.Name))
		if collided {
			fmt.Fprintf(os.Stderr, "warning: duplicate project id for %q, stored as %s\n", fields.Name, id)
		}
		if opts.Verbose && !opts.Quiet {
			fmt.Printf("[%d/%d] %s\n", i+1, len(table.Rows), fields.Name)
		}

		paths, err := PlanImagePaths(opts.OutputDir, fields.Sector, fields.Type, id)
		if err != nil {
			return Summary{}, err
		}

		project, downloaded := normalizer.Normalize(ctx, fields, id, paths)
		if downloaded {
			logos++
		}
		if err := writeJSONFile(filepath.Join(projectsDir, id+".json"), project); err != nil {
			return Summary{}, err
		}

		acc.Record(fields.Sector, fields.Type, id)
		runProjects = append(runProjects, internal.RunProject{
			ProjectID: id,
			Name:      fields.Name,
			Sector:    fields.Sector,
			Type:      fields.Type,
		})
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if _, err := acc.RenderAll(mapsDir); err != nil {
		return Summary{}, err
	}
	if err := FixPathSpaces(opts.OutputDir); err != nil {
		return Summary{}, err
	}
	if err := UpdateLogoRefs(projectsDir); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Projects:        len(table.Rows),
		Sectors:         acc.Sectors(),
		LogosDownloaded: logos,
		Duration:        time.Since(start),
	}

	if s.db != nil {
		runID, err := s.db.InsertRun(opts.InputPath, opts.OutputDir, summary.Projects, summary.Sectors, summary.LogosDownloaded, summary.Duration.Milliseconds())
		if err == nil {
			_ = s.db.InsertRunProjects(runID, runProjects)
		}
	}

	return summary, nil
}
