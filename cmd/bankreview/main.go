package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"masteryls"
)

func main() {
	var (
		dir     = flag.String("dir", "", "Parse this markdown corpus and review the result")
		dbPath  = flag.String("db", "", "Review the bank stored in this sqlite database")
		apiKey  = flag.String("api-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
		dedup   = flag.Bool("dedup", false, "Also check for reworded near-duplicate questions")
		limit   = flag.Int("limit", 0, "Review at most this many questions (0 = all)")
		output  = flag.String("output", "", "Output file for the review report JSON (default: stdout)")
		verbose = flag.Bool("verbose", false, "Enable verbose output")
	)

	flag.Parse()

	masteryls.SetVerbose(*verbose)

	if (*dir == "") == (*dbPath == "") {
		log.Fatal("Exactly one of -dir or -db is required.")
	}

	// Get API key from flag or environment
	if *apiKey == "" {
		*apiKey = os.Getenv("OPENAI_API_KEY")
		if *apiKey == "" {
			log.Fatal("OpenAI API key is required. Use -api-key flag or set OPENAI_API_KEY environment variable.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var (
		bank *masteryls.Bank
		src  string
		err  error
	)
	if *dir != "" {
		src = *dir
		bank, _, err = masteryls.ParseCorpus(ctx, *dir, nil)
		if err != nil {
			log.Fatalf("Failed to parse corpus: %v", err)
		}
	} else {
		src = *dbPath
		db, err := masteryls.OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.CloseDB()

		bank, err = db.LoadBank()
		if err != nil {
			log.Fatalf("Failed to load bank: %v", err)
		}
	}

	if bank.Size() == 0 {
		log.Fatal("No questions to review.")
	}

	fmt.Printf("📚 Loaded %d question(s) from %s\n", bank.Size(), src)

	logger, err := masteryls.NewReviewLogger(src, bank.Size())
	if err != nil {
		log.Printf("Failed to create review logger: %v", err)
		// Continue without logging rather than failing
	} else {
		defer logger.Close()
		fmt.Printf("📝 Review run %s\n", logger.RunID())
	}

	runner := masteryls.NewReviewRunner(*apiKey, *dedup, logger)

	fmt.Println("🎯 Reviewing questions...")
	report, err := runner.Run(ctx, bank, *limit)
	if err != nil {
		log.Fatalf("Review run failed: %v", err)
	}

	fmt.Printf("✅ %d accepted, 🚩 %d flagged, ♻️ %d near-duplicates, %d failed\n",
		len(report.Accepted), len(report.Flagged), len(report.Duplicates), report.Failed)

	for _, flagged := range report.Flagged {
		fmt.Printf("  🚩 %s: %s\n", flagged.QuestionKey, flagged.Reason)
	}
	for _, dup := range report.Duplicates {
		fmt.Printf("  ♻️ duplicate of %s: %s\n", dup.DuplicateOf, dup.Reason)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("Failed to write review report: %v", err)
	}
}
