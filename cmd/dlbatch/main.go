// Command dlbatch decodes every Holley datalog under a directory tree on a
// worker pool, writes a summary report, and optionally exports each decoded
// log as CSV. It is configured by a YAML file and logs to a rotating file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"github.com/efidecode/dlog"
	"github.com/efidecode/dlog/analyze"
	"github.com/efidecode/dlog/dataset"
	"github.com/efidecode/dlog/format"
)

type logConfig struct {
	Directory  string `yaml:"directory"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

type exportConfig struct {
	Enabled   bool   `yaml:"enabled"`
	OutDir    string `yaml:"outDir"`
	Compress  string `yaml:"compress"`
	Precision int    `yaml:"precision"`
}

type config struct {
	Root    string       `yaml:"root"`
	Workers int          `yaml:"workers"`
	Export  exportConfig `yaml:"export"`
	Logs    logConfig    `yaml:"logs"`
}

func loadConfig(path string) (config, error) {
	cfg := config{
		Export: exportConfig{Precision: -1},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Export.Enabled && cfg.Export.OutDir == "" {
		cfg.Export.OutDir = "csv"
	}
	if cfg.Logs.Directory == "" {
		cfg.Logs.Directory = "logs"
	}
	if cfg.Logs.MaxSizeMB <= 0 {
		cfg.Logs.MaxSizeMB = 25
	}
	if cfg.Logs.MaxAgeDays <= 0 {
		cfg.Logs.MaxAgeDays = 7
	}
	if cfg.Logs.MaxBackups <= 0 {
		cfg.Logs.MaxBackups = 5
	}

	return cfg, nil
}

func setupLogging(cfg logConfig) error {
	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Directory, "dlbatch.log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return nil
}

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	root := flag.String("root", "", "directory to scan (overrides config)")
	workers := flag.Int("workers", 0, "worker count (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *root != "" {
		cfg.Root = *root
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if cfg.Root == "" {
		fmt.Fprintln(os.Stderr, "usage: dlbatch [-config dlbatch.yaml] [-root dir] [-workers n]")
		os.Exit(1)
	}
	if err := setupLogging(cfg.Logs); err != nil {
		log.Fatalf("setup logging: %v", err)
	}

	compression, err := format.ParseCompression(cfg.Export.Compress)
	if err != nil {
		log.Fatalf("export config: %v", err)
	}

	log.Printf("scanning %s with %d workers", cfg.Root, cfg.Workers)
	report, err := analyze.Batch(cfg.Root, cfg.Workers)
	if err != nil {
		log.Fatalf("batch: %v", err)
	}
	log.Printf("decoded %d, failed %d", report.Decoded, report.Failed)

	printSummary(report)

	if cfg.Export.Enabled {
		if err := exportAll(report, cfg.Root, cfg.Export, compression); err != nil {
			log.Fatalf("export: %v", err)
		}
	}
	if report.Failed > 0 {
		os.Exit(1)
	}
}

func printSummary(report analyze.BatchReport) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tVERSION\tROWS\tRPM MAX\tSTATUS")
	for _, fr := range report.Files {
		if fr.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t%v\n", fr.Path, fr.Err)
			continue
		}
		status := "ok"
		if fr.Partial {
			status = "ok (partial schema)"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			fr.Path, fr.Version, fr.Rows, rpmMax(fr.Stats), status)
	}
	w.Flush()
}

func rpmMax(stats []analyze.ColumnStats) string {
	for _, cs := range stats {
		if cs.Name == "RPM" {
			return fmt.Sprintf("%.0f", cs.Max)
		}
	}

	return "-"
}

// exportAll re-decodes each successfully summarized log and writes its CSV
// next to the others under export.outDir, mirroring the scan tree.
func exportAll(report analyze.BatchReport, root string, cfg exportConfig, compression format.CompressionType) error {
	opts := []dataset.CSVOption{
		dataset.WithCompression(compression),
		dataset.WithPrecision(cfg.Precision),
	}

	for _, fr := range report.Files {
		if fr.Err != nil {
			continue
		}

		rel, err := filepath.Rel(root, fr.Path)
		if err != nil {
			rel = filepath.Base(fr.Path)
		}
		outPath := filepath.Join(cfg.OutDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".csv")
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}

		ds, err := dlog.DecodeFile(fr.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", fr.Path, err)
		}
		if err := ds.ExportCSV(outPath, opts...); err != nil {
			return fmt.Errorf("%s: %w", fr.Path, err)
		}
		log.Printf("exported %s -> %s%s", fr.Path, outPath, compression.Ext())
	}

	return nil
}
