// Package orchestrator runs PDG-build-plus-feature-extraction jobs across a
// fixed-size worker pool with per-file timeouts, aggregating results into
// one sorted report. Grounded on original_source/classification/
// static_analysis.py's Analysis class and its two worker-pool functions
// (get_features, get_features_representation).
package orchestrator

import (
	"github.com/Aurore54F/jstap/pkg/classifier"
	"github.com/Aurore54F/jstap/pkg/jlog"
	"github.com/Aurore54F/jstap/pkg/sparse"
)

// Analysis is one file's complete processing record, mirroring
// static_analysis.py's Analysis class: the file analyzed, a PDGPath field
// (not filled in by this module's commands; pkg/store keys persisted PDGs
// by file path), its feature row, its ground-truth label (if any), and its
// predicted label (once classified).
type Analysis struct {
	// ID uniquely identifies this analysis run for a file, so a log line
	// ("WARNING [orchestrator]: ...") and a later re-queue of the same
	// path can be correlated across worker goroutines even when two jobs
	// target the same FilePath within one run.
	ID        string
	FilePath  string
	PDGPath   string
	Features  *sparse.Matrix
	Label     classifier.Label
	Predicted classifier.Label
	Err       error
}

// MergeFeatures stacks every successful Analysis's feature row into one
// matrix, along with parallel FilePath/Label slices, mirroring
// get_features_representation's sparse.vstack reduction across workers.
// Results with a non-nil Err or nil Features are skipped (logged, not
// fatal). Performs the same file-count/row-count consistency check the
// source runs at the end of get_features_representation, logging (not
// failing) on mismatch, since a partial result set is still usable.
func MergeFeatures(results []*Analysis, log *jlog.Logger) (*sparse.Matrix, []string, []classifier.Label, error) {
	var mats []*sparse.Matrix
	var paths []string
	var labels []classifier.Label
	skipped := 0
	for _, a := range results {
		if a == nil || a.Err != nil || a.Features == nil {
			skipped++
			continue
		}
		mats = append(mats, a.Features)
		paths = append(paths, a.FilePath)
		labels = append(labels, a.Label)
	}
	if skipped > 0 && log != nil {
		log.Warnf("skipped %d of %d files with errors or no features", skipped, len(results))
	}

	merged, err := sparse.VStack(mats...)
	if err != nil {
		return nil, nil, nil, err
	}
	if merged.Rows != len(paths) || len(paths) != len(labels) {
		if log != nil {
			log.Errorf("row/file/label count mismatch: %d rows, %d files, %d labels", merged.Rows, len(paths), len(labels))
		}
	}
	return merged, paths, labels, nil
}
