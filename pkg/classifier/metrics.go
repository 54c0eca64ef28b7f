package classifier

import "fmt"

// Score reports the confusion-matrix-derived accuracy of a labeled
// evaluation run, mirroring get_score's printed TP/FP/FN/TN/TPR/TNR/
// detection-rate summary (returned here as a struct instead of printed,
// so callers decide how to surface it).
type Score struct {
	TP, FP, FN, TN int
	Accuracy       float64
	TPR            float64 // true positive rate (recall on malicious)
	TNR            float64 // true negative rate (recall on benign)
}

// ComputeScore compares ground-truth labels against predicted labels and
// returns the resulting Score, mirroring get_score's confusion_matrix call
// with labels=['benign', 'malicious']. Returns an error if labels and
// predicted differ in length, or if labels contains Unknown ("?"), which
// mirrors get_score's own "no ground truth given" early-out (there it logs
// and skips scoring instead of erroring; propagating the condition as an
// error lets the CLI decide how to report it instead of silently printing
// nothing).
func ComputeScore(labels, predicted []Label) (*Score, error) {
	if len(labels) != len(predicted) {
		return nil, fmt.Errorf("classifier: labels and predicted have different lengths (%d vs %d)", len(labels), len(predicted))
	}
	for _, l := range labels {
		if l == Unknown {
			return nil, fmt.Errorf("classifier: no ground truth given, cannot evaluate accuracy")
		}
	}

	var s Score
	for i, l := range labels {
		p := predicted[i]
		switch {
		case l == Malicious && p == Malicious:
			s.TP++
		case l == Benign && p == Malicious:
			s.FP++
		case l == Malicious && p == Benign:
			s.FN++
		case l == Benign && p == Benign:
			s.TN++
		}
	}

	total := s.TP + s.FP + s.FN + s.TN
	if total > 0 {
		s.Accuracy = float64(s.TP+s.TN) / float64(total)
	}
	if s.TP+s.FN > 0 {
		s.TPR = float64(s.TP) / float64(s.TP+s.FN)
	}
	if s.TN+s.FP > 0 {
		s.TNR = float64(s.TN) / float64(s.TN+s.FP)
	}
	return &s, nil
}

// Note: get_nb_trees_specific_label (per-tree majority-vote agreement
// count) is intentionally not ported. It walks model.estimators_, the
// individual trees inside the trained forest; once the classifier is
// delegated to an external process speaking only predict_proba-shaped
// JSON, there is no tree-level handle to call predict_proba on
// individually, so the per-tree breakdown has no expressible Go
// equivalent behind this adapter boundary.
