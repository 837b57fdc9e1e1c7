package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Nowhitestar/process-builder-data/internal/config"
	"github.com/Nowhitestar/process-builder-data/internal/fetch"
	"github.com/Nowhitestar/process-builder-data/internal/pipeline"
	"github.com/Nowhitestar/process-builder-data/internal/storage"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) > 1 && os.Args[1] == "runs:list" {
		fs := flag.NewFlagSet("runs:list", flag.ExitOnError)
		limit := fs.Int("limit", 20, "max runs to show")
		_ = fs.Parse(os.Args[2:])
		listRuns(cfg, *limit)
		return
	}

	fs := flag.NewFlagSet("procbuilder", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "enable verbose output")
	quiet := fs.Bool("quiet", false, "suppress output except errors")
	skipLogos := fs.Bool("skip-logos", false, "skip logo downloading")
	rateLimit := fs.Float64("rate-limit", float64(cfg.RateLimitMs)/1000, "delay between requests in seconds")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = usage(fs)
	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("procbuilder %s\n", version)
		return
	}

	args := fs.Args()
	if len(args) != 2 {
		fs.Usage()
		os.Exit(1)
	}
	inputPath, outputDir := args[0], args[1]

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	svc := pipeline.NewProcessingService(db, cfg, fetch.NewUnavatarClient(cfg), fetch.NewMetaDescriptionClient(cfg))

	if !*quiet {
		fmt.Printf("input=%s output=%s\n", inputPath, outputDir)
	}

	summary, err := svc.Run(context.Background(), pipeline.Options{
		InputPath: inputPath,
		OutputDir: outputDir,
		Verbose:   *verbose,
		Quiet:     *quiet,
		SkipLogos: *skipLogos,
		RateLimit: time.Duration(*rateLimit * float64(time.Second)),
	})
	must(err)

	if !*quiet {
		fmt.Printf("processing complete: projects=%d sectors=%d logos=%d in %s\n",
			summary.Projects, summary.Sectors, summary.LogosDownloaded, summary.Duration.Round(time.Millisecond))
	}
}

func listRuns(cfg config.Config, limit int) {
	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	runs, err := db.ListRuns(limit)
	must(err)
	for _, run := range runs {
		fmt.Printf("%d\t%s\tprojects=%d sectors=%d logos=%d %dms\t%s\n",
			run.ID, run.CreatedAt, run.Projects, run.Sectors, run.LogosDownloaded, run.DurationMs, run.CSVPath)
	}
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(os.Stderr, "usage: procbuilder [flags] <csv_file> <output_dir>")
		fmt.Fprintln(os.Stderr, "       procbuilder runs:list [--limit=20]")
		fmt.Fprintln(os.Stderr, "flags:")
		fs.PrintDefaults()
	}
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
