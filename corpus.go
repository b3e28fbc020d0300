package masteryls

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// fileResult holds everything one file contributed before the merge
type fileResult struct {
	file      string
	questions []*QuestionBlock
	diags     []Diagnostic
}

// ParseCorpus walks a directory tree of markdown files, parses each file
// on a bounded pool of workers and merges the results into a Bank in
// file order. Files are independent so the workers need no coordination;
// the serial merge is the single synchronization point, which keeps
// duplicate-id detection deterministic. A file that cannot be read is a
// diagnostic, not a run failure; only an unreadable root aborts.
func ParseCorpus(ctx context.Context, root string, cfg *Config) (*Bank, *Report, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	files, err := listMarkdownFiles(root, cfg.Extensions)
	if err != nil {
		return nil, nil, err
	}

	VerboseLog("Parsing %d markdown files under %s with %d workers", len(files), root, cfg.Workers)

	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = parseFile(file, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	bank := NewBank()
	report := &Report{}
	for _, res := range results {
		report.Add(res.diags...)
		for _, q := range res.questions {
			if diag := bank.Add(q); diag != nil {
				report.Add(*diag)
			}
		}
	}
	report.Sort()

	VerboseLog("Corpus parsed: %d questions, %d diagnostics", bank.Size(), len(report.Diagnostics))
	return bank, report, nil
}

// ParseFile parses a single markdown file into questions and diagnostics.
// Blocks that fail parsing or validation are reported and skipped; the
// surviving questions are returned in document order.
func ParseFile(file string, cfg *Config) ([]*QuestionBlock, []Diagnostic) {
	res := parseFile(file, cfg)
	return res.questions, res.diags
}

// ParseDocument parses already-loaded markdown source. The file name is
// only used for diagnostics and fallback keys.
func ParseDocument(file, source string, cfg *Config) ([]*QuestionBlock, []Diagnostic) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	blocks, diags := ExtractBlocks(file, source)

	var questions []*QuestionBlock
	for ordinal, raw := range blocks {
		q, blockDiags := ParseBlock(file, ordinal, raw, cfg)
		diags = append(diags, blockDiags...)
		if q == nil {
			continue
		}
		if vDiags := Validate(q); len(vDiags) > 0 {
			diags = append(diags, vDiags...)
			continue
		}
		questions = append(questions, q)
	}
	return questions, diags
}

func parseFile(file string, cfg *Config) fileResult {
	data, err := os.ReadFile(file)
	if err != nil {
		return fileResult{file: file, diags: []Diagnostic{{
			Kind:    KindFileError,
			File:    file,
			Message: fmt.Sprintf("failed to read file: %v", err),
		}}}
	}

	questions, diags := ParseDocument(file, string(data), cfg)
	return fileResult{file: file, questions: questions, diags: diags}
}

// listMarkdownFiles collects matching files in sorted order so corpus
// runs are reproducible regardless of directory iteration order
func listMarkdownFiles(root string, extensions []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range extensions {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk corpus directory %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
