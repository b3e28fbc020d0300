package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"masteryls"
)

func main() {
	var (
		dir        = flag.String("dir", ".", "Root directory of the markdown corpus")
		configPath = flag.String("config", "", "YAML config file with tolerance policies (optional)")
		outputFile = flag.String("output", "", "Output file for the bank JSON (default: stdout)")
		dbPath     = flag.String("db", "", "Also persist the bank to this sqlite database (optional)")
		workers    = flag.Int("workers", 0, "Number of parallel file parsers (overrides config)")
		strict     = flag.Bool("strict", false, "Exit non-zero when any diagnostics are reported")
		quiet      = flag.Bool("quiet", false, "Suppress the diagnostics summary on stderr")
		verbose    = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()

	masteryls.SetVerbose(*verbose)

	cfg := masteryls.DefaultConfig()
	if *configPath != "" {
		loaded, err := masteryls.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	bank, report, err := masteryls.ParseCorpus(ctx, *dir, cfg)
	if err != nil {
		log.Fatalf("Failed to parse corpus: %v", err)
	}

	if !*quiet && !report.Empty() {
		fmt.Fprintf(os.Stderr, "⚠️  %d diagnostic(s) found:\n", len(report.Diagnostics))
		if err := report.WriteText(os.Stderr); err != nil {
			log.Fatalf("Failed to write diagnostics: %v", err)
		}
	}

	export := masteryls.NewBankExport(*dir, bank, report)
	if err := export.WriteFile(*outputFile); err != nil {
		log.Fatalf("Failed to write bank export: %v", err)
	}

	if *dbPath != "" {
		db, err := masteryls.OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.CloseDB()

		if err := db.CreateTables(); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		if err := db.SaveBank(bank, report); err != nil {
			log.Fatalf("Failed to save bank: %v", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Bank saved to %s\n", *dbPath)
	}

	fmt.Fprintf(os.Stderr, "✅ %d question(s) in the bank, %d diagnostic(s)\n", bank.Size(), len(report.Diagnostics))

	if *strict && !report.Empty() {
		os.Exit(1)
	}
}
