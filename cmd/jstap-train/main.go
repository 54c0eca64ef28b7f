// Command jstap-train builds a feature dictionary from a labeled training
// corpus: PDG-build plus feature extraction over every file, popularity
// pre-filtering, chi-square selection against the benign/malicious split,
// then persisting the resulting dictionary for cmd/jstap-classify to load.
// Mirrors original_source/classification/features_preselection.py and
// features_selection.py's offline training-time pipeline; the random-forest
// fit itself stays delegated to an external process, matching spec.md's
// explicit non-goal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Aurore54F/jstap/pkg/config"
	"github.com/Aurore54F/jstap/pkg/features"
	"github.com/Aurore54F/jstap/pkg/featurespace"
	"github.com/Aurore54F/jstap/pkg/jlog"
	"github.com/Aurore54F/jstap/pkg/orchestrator"
	"github.com/Aurore54F/jstap/pkg/pdg"
	"github.com/Aurore54F/jstap/pkg/pdgcache"
	"github.com/Aurore54F/jstap/pkg/tokenizer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configDir  string
		benignDir  string
		malDir     string
		parserCmd  string
		parserArgs string
		confidence float64
		outPath    string
	)

	fs := flag.NewFlagSet("jstap-train", flag.ContinueOnError)
	fs.StringVar(&configDir, "config-dir", ".", "directory to look for jstap.yml in")
	fs.StringVar(&benignDir, "benign", "", "directory of benign training files (required)")
	fs.StringVar(&malDir, "malicious", "", "directory of malicious training files (required)")
	fs.StringVar(&parserCmd, "parser", "esprima-ast", "external AST parser command")
	fs.StringVar(&parserArgs, "parser-args", "", "comma-separated parser command arguments")
	fs.Float64Var(&confidence, "confidence", 0, "chi-square selection confidence percentage (0 uses jstap.yml's value)")
	fs.StringVar(&outPath, "out", "", "output dictionary path (required)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: jstap-train -benign dir -malicious dir -out dict.gob")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if benignDir == "" || malDir == "" || outPath == "" {
		fs.Usage()
		return fmt.Errorf("-benign, -malicious and -out are all required")
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if confidence <= 0 {
		confidence = cfg.Confidence
	}

	log := jlog.New("train")
	level := features.Level(cfg.FeatureLevel)

	jobs, err := collectJobs(benignDir, malDir)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no training files found under %s or %s", benignDir, malDir)
	}

	parser := &pdg.ExternalParser{Command: parserCmd, Args: splitArgs(parserArgs)}
	tok := tokenizer.New()
	cache := pdgcache.New(cfg.Workers * 8)

	ctx := context.Background()
	timeout := time.Duration(cfg.FileTimeoutSeconds) * time.Second
	countResults := countCorpus(ctx, jobs, cfg.Workers, timeout, level, cfg.NGram, parser, tok, cache)

	perFile := make([]map[string]int, 0, len(countResults))
	labels := make([]bool, 0, len(countResults))
	failed := 0
	for i, r := range countResults {
		if r.err != nil {
			failed++
			continue
		}
		perFile = append(perFile, r.counts)
		labels = append(labels, jobs[i].Label == "malicious")
	}
	if failed > 0 {
		log.Warnf("skipped %d of %d training files with errors", failed, len(countResults))
	}

	popular := featurespace.CountPopularFeatures(perFile)
	tables := featurespace.InitializeAnalyzedFeatures(popular)
	featurespace.AnalyzeFileCorpus(tables, perFile, labels)

	critical := featurespace.CriticalValue(confidence)
	selected := featurespace.SelectFeatures(tables, critical)
	if len(selected) == 0 {
		return fmt.Errorf("chi-square selection kept no features (corpus too small or confidence too high)")
	}

	dict := featurespace.BuildDictionary(selected)
	if err := dict.Save(outPath); err != nil {
		return fmt.Errorf("save dictionary: %w", err)
	}

	log.Infof("trained dictionary: %d features selected from %d candidates, %d files (%d failed)",
		len(selected), len(popular), len(perFile), failed)
	return nil
}

// countFile runs one training file through parse/tokenize and feature
// counting, without vectorizing against any dictionary (there isn't one
// yet), mirroring features_preselection.py's per-file counting pass that
// precedes features_selection.py's chi-square stage.
func countFile(ctx context.Context, path string, level features.Level, ngram int,
	parser *pdg.ExternalParser, tok *tokenizer.Tokenizer, cache *pdgcache.Cache) (map[string]int, int, error) {

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	if level == "tokens" {
		toks, err := tok.Tokenize(source)
		if err != nil {
			return nil, 0, err
		}
		codes := make([]int, len(toks))
		for i, t := range toks {
			codes[i] = pdg.TokenKindOf(t.Kind)
		}
		counts, n, err := features.CountNGrams(codes, ngram)
		if err != nil {
			return nil, 0, err
		}
		return featurespace.NGramCounts(counts), n, nil
	}

	g := cache.Get(path)
	if g == nil {
		g, err = parser.Parse(ctx, path, source)
		if err != nil {
			return nil, 0, err
		}
		root := g.Root()
		if root == nil {
			return nil, 0, fmt.Errorf("%s: empty AST", path)
		}
		pdg.BuildCFG(g, root.ID)
		pdg.BuildDFG(g, root.ID)
		cache.Put(path, g)
	}

	units := features.ExtractUnits(g, level)
	codes := features.Codes(units)
	counts, n, err := features.CountNGrams(codes, ngram)
	if err != nil {
		return nil, 0, err
	}
	return featurespace.NGramCounts(counts), n, nil
}

// countResult is one file's feature-counting outcome, the training-time
// analogue of orchestrator.Analysis (which carries a vectorized sparse row
// instead, since classification needs a fixed dictionary this stage is
// still building).
type countResult struct {
	counts map[string]int
	err    error
}

// countCorpus runs countFile over jobs across a fixed-size worker pool with
// per-file timeouts, the same shape as pkg/orchestrator.Pool but over raw
// count maps rather than vectorized+classified Analysis results.
func countCorpus(ctx context.Context, jobs []orchestrator.Job, workers int, perFileTimeout time.Duration,
	level features.Level, ngram int, parser *pdg.ExternalParser, tok *tokenizer.Tokenizer, cache *pdgcache.Cache) []countResult {

	results := make([]countResult, len(jobs))
	jobCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobCh {
				fctx, cancel := context.WithTimeout(ctx, perFileTimeout)
				counts, _, err := countFile(fctx, jobs[i].Path, level, ngram, parser, tok, cache)
				cancel()
				results[i] = countResult{counts: counts, err: err}
			}
		}()
	}
	for i := range jobs {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()
	return results
}

// collectJobs walks benignDir and malDir for .js files, labeling each
// mirroring the source's directory-per-class training corpus layout.
func collectJobs(benignDir, malDir string) ([]orchestrator.Job, error) {
	var jobs []orchestrator.Job
	add := func(dir, label string) error {
		return filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || filepath.Ext(p) != ".js" {
				return nil
			}
			jobs = append(jobs, orchestrator.Job{Path: p, Label: label})
			return nil
		})
	}
	if err := add(benignDir, "benign"); err != nil {
		return nil, err
	}
	if err := add(malDir, "malicious"); err != nil {
		return nil, err
	}
	return jobs, nil
}

func splitArgs(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
