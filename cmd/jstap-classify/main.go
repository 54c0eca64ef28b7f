// Command jstap-classify runs the full PDG-build -> feature-extraction ->
// vectorization -> external-classifier pipeline over a batch of JavaScript
// files, in the teacher's flag.NewFlagSet/run(args) error CLI shape
// (onedusk-pd/cmd/decompose/main.go).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Aurore54F/jstap/pkg/classifier"
	"github.com/Aurore54F/jstap/pkg/config"
	"github.com/Aurore54F/jstap/pkg/features"
	"github.com/Aurore54F/jstap/pkg/featurespace"
	"github.com/Aurore54F/jstap/pkg/jlog"
	"github.com/Aurore54F/jstap/pkg/orchestrator"
	"github.com/Aurore54F/jstap/pkg/pdg"
	"github.com/Aurore54F/jstap/pkg/pdgcache"
	"github.com/Aurore54F/jstap/pkg/store"
	"github.com/Aurore54F/jstap/pkg/tokenizer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	ConfigDir  string
	ParserCmd  string
	ParserArgs string
	ModelCmd   string
	ModelArgs  string
	DictPath   string
	StorePath  string
	Label      string
	DumpDot    bool
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("jstap-classify", flag.ContinueOnError)
	fs.StringVar(&flags.ConfigDir, "config-dir", ".", "directory to look for jstap.yml in")
	fs.StringVar(&flags.ParserCmd, "parser", "esprima-ast", "external AST parser command")
	fs.StringVar(&flags.ParserArgs, "parser-args", "", "comma-separated parser command arguments")
	fs.StringVar(&flags.ModelCmd, "model", "jstap-predict", "external random-forest predictor command")
	fs.StringVar(&flags.ModelArgs, "model-args", "", "comma-separated predictor command arguments")
	fs.StringVar(&flags.DictPath, "dict", "", "trained feature dictionary path (required)")
	fs.StringVar(&flags.StorePath, "store", "", "optional SQLite PDG store path")
	fs.StringVar(&flags.Label, "label", "", "ground-truth label to apply to every input, for evaluation (benign|malicious)")
	fs.BoolVar(&flags.DumpDot, "dump-dot", false, "write each file's PDG as Graphviz DOT next to the source file")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		return fmt.Errorf("no input files given")
	}
	if flags.DictPath == "" {
		return fmt.Errorf("-dict is required")
	}

	cfg, err := config.Load(flags.ConfigDir)
	if err != nil {
		return err
	}
	dict, err := featurespace.LoadDictionary(flags.DictPath)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}

	log := jlog.New("classify")

	var st *store.Store
	if flags.StorePath != "" {
		st, err = store.Open(flags.StorePath)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	parser := &pdg.ExternalParser{Command: flags.ParserCmd, Args: splitArgs(flags.ParserArgs)}
	tok := tokenizer.New()
	cache := pdgcache.New(cfg.Workers * 8)
	level := features.Level(cfg.FeatureLevel)

	jobs := make([]orchestrator.Job, len(files))
	for i, f := range files {
		jobs[i] = orchestrator.Job{Path: f, Label: flags.Label}
	}

	worker := func(ctx context.Context, job orchestrator.Job) *orchestrator.Analysis {
		return analyzeFile(ctx, job, cfg, dict, parser, tok, cache, st, level, flags.DumpDot, log)
	}

	ctx := context.Background()
	timeout := time.Duration(cfg.FileTimeoutSeconds) * time.Second
	results := orchestrator.Pool(ctx, jobs, cfg.Workers, timeout, worker, log)

	merged, paths, labels, err := orchestrator.MergeFeatures(results, log)
	if err != nil {
		return fmt.Errorf("merge features: %w", err)
	}
	if merged.Rows == 0 {
		return fmt.Errorf("no files were successfully analyzed")
	}

	predictor := &classifier.SubprocessPredictor{Command: flags.ModelCmd, Args: splitArgs(flags.ModelArgs)}
	proba, err := predictor.Predict(ctx, merged)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	predicted := classifier.PredictLabels(proba, cfg.Threshold)

	for i, p := range paths {
		fmt.Printf("%s: %s (%s)\n", p, predicted[i], labels[i])
	}
	fmt.Println("> Name: labelPredicted (trueLabel)")

	if score, err := classifier.ComputeScore(labels, predicted); err == nil {
		fmt.Printf("Detection: %v\n", score.Accuracy)
		fmt.Printf("TP: %d, FP: %d, FN: %d, TN: %d\n", score.TP, score.FP, score.FN, score.TN)
		fmt.Printf("TPR: %v, TNR: %v\n", score.TPR, score.TNR)
	}

	return nil
}

// analyzeFile runs one file through parse -> CFG -> DFG -> feature
// extraction -> vectorization, mirroring static_analysis.py's per-file
// worker body (worker_get_features_vector).
func analyzeFile(ctx context.Context, job orchestrator.Job, cfg *config.Config, dict *featurespace.Dictionary,
	parser *pdg.ExternalParser, tok *tokenizer.Tokenizer, cache *pdgcache.Cache, st *store.Store,
	level features.Level, dumpDot bool, log *jlog.Logger) *orchestrator.Analysis {

	a := &orchestrator.Analysis{FilePath: job.Path}
	a.Label = classifier.Label(job.Label)
	if a.Label == "" {
		a.Label = classifier.Unknown
	}

	source, err := os.ReadFile(job.Path)
	if err != nil {
		a.Err = fmt.Errorf("read %s: %w", job.Path, err)
		return a
	}

	var countsMap map[string]int
	var total int

	if level == "tokens" {
		toks, err := tok.Tokenize(source)
		if err != nil {
			a.Err = err
			return a
		}
		codes := make([]int, len(toks))
		for i, t := range toks {
			codes[i] = pdg.TokenKindOf(t.Kind)
		}
		counts, n, err := features.CountNGrams(codes, cfg.NGram)
		if err != nil {
			a.Err = err
			return a
		}
		countsMap = featurespace.NGramCounts(counts)
		total = n
	} else {
		g := cache.Get(job.Path)
		if g == nil {
			g, err = parser.Parse(ctx, job.Path, source)
			if err != nil {
				a.Err = err
				return a
			}
			root := g.Root()
			if root == nil {
				a.Err = fmt.Errorf("%s: empty AST", job.Path)
				return a
			}
			pdg.BuildCFG(g, root.ID)
			pdg.BuildDFG(g, root.ID)
			cache.Put(job.Path, g)
		}

		if dumpDot {
			if err := writeDot(job.Path, g); err != nil {
				log.Warnf("dump dot for %s: %v", job.Path, err)
			}
		}
		if st != nil {
			if err := st.Put(ctx, job.Path, string(a.Label), g); err != nil {
				log.Warnf("persist PDG for %s: %v", job.Path, err)
			}
		}

		units := features.ExtractUnits(g, level)
		codes := features.Codes(units)
		counts, n, err := features.CountNGrams(codes, cfg.NGram)
		if err != nil {
			a.Err = err
			return a
		}
		countsMap = featurespace.NGramCounts(counts)
		total = n
	}

	a.Features = featurespace.Vector(dict, countsMap, total)
	return a
}

func writeDot(path string, g *pdg.Graph) error {
	root := g.Root()
	if root == nil {
		return nil
	}
	f, err := os.Create(path + ".dot")
	if err != nil {
		return err
	}
	defer f.Close()
	return pdg.WriteDOT(f, g, root.ID, true)
}

func splitArgs(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: jstap-classify [flags] file.js [file.js ...]")
	fs.PrintDefaults()
}
