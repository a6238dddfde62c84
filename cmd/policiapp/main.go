// Command policiapp converts scanned multiple-choice exam PDFs into a
// structured question bank. Each page is rasterized, normalized, OCR'd
// (with a per-page disk cache), parsed, and reconciled with the exam's
// answer-key pages; the merged result is written as JSONL, CSV and XLSX.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Avionetito/PoliciApp/cache"
	"github.com/Avionetito/PoliciApp/config"
	"github.com/Avionetito/PoliciApp/exam"
	"github.com/Avionetito/PoliciApp/export"
	"github.com/Avionetito/PoliciApp/observability"
	"github.com/Avionetito/PoliciApp/ocr/tesseract"
	"github.com/Avionetito/PoliciApp/pipeline"
	"github.com/Avionetito/PoliciApp/raster"
)

type options struct {
	configPath string
	srcDir     string
	cacheDir   string
	outDir     string
	dpi        int
	lang       string
	mode       string
	verbose    bool
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "policiapp: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: policiapp [flags]\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.configPath, "config", "policiapp.toml", "Path to the TOML run configuration")
	flag.StringVar(&opts.srcDir, "src", "", "Directory with input PDF files (overrides config)")
	flag.StringVar(&opts.cacheDir, "cache", "", "OCR page cache directory (overrides config)")
	flag.StringVar(&opts.outDir, "out", "", "Output directory (overrides config)")
	flag.IntVar(&opts.dpi, "dpi", 0, "Rasterization DPI (overrides config)")
	flag.StringVar(&opts.lang, "lang", "", "Comma-separated OCR languages (overrides config)")
	flag.StringVar(&opts.mode, "mode", "", "Parse mode: separate or inline (overrides config)")
	flag.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	flag.Parse()
	return opts
}

func run(opts options) error {
	// Local .env files are a convenience for development setups; a missing
	// file is expected.
	_ = godotenv.Load()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if cfg, err = applyOverrides(cfg, opts); err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := observability.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	pc, err := cache.New(cfg.CacheDir)
	if err != nil {
		return err
	}
	proc := pipeline.NewProcessor(cfg, raster.NewFitzRasterizer(), tesseract.NewEngine(), pc, log)

	result, err := proc.ProcessCorpus(context.Background())
	if errors.Is(err, pipeline.ErrNoDocuments) {
		fmt.Printf("No PDF files found in %s\n", cfg.SourceDir)
		return nil
	}
	if err != nil {
		return err
	}

	if err := export.WriteAll(cfg.OutputDir, result.Questions); err != nil {
		return err
	}
	printSummary(cfg, result)
	return nil
}

func applyOverrides(cfg pipeline.Config, opts options) (pipeline.Config, error) {
	if opts.srcDir != "" {
		cfg.SourceDir = opts.srcDir
	}
	if opts.cacheDir != "" {
		cfg.CacheDir = opts.cacheDir
	}
	if opts.outDir != "" {
		cfg.OutputDir = opts.outDir
	}
	if opts.dpi > 0 {
		cfg.DPI = opts.dpi
	}
	if opts.lang != "" {
		cfg.Languages = strings.Split(opts.lang, ",")
	}
	if opts.mode != "" {
		mode, err := exam.ParseModeFromString(opts.mode)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	return cfg, nil
}

func printSummary(cfg pipeline.Config, result pipeline.CorpusResult) {
	fmt.Printf("%d questions saved to %s\n", len(result.Questions), cfg.OutputDir)
	if unresolved := result.Unresolved(); len(unresolved) > 0 {
		fmt.Printf("Questions without an answer (check the answer-key OCR): %v\n", unresolved)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.Path, f.Err)
	}
}
