// Package classifier delegates the actual random-forest decision to an
// external process (a scikit-learn-compatible predictor), matching the
// spec's explicit non-goal of reimplementing or retraining the classifier
// itself: this package only owns the adapter boundary, thresholding, and
// evaluation reporting around whatever the external model returns.
// Grounded on original_source/classification/machine_learning.py
// (classifier_choice, predict_labels_using_threshold) and the teacher's
// pkg/semantic/classifier/classifier.go's interface/adapter split.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/Aurore54F/jstap/pkg/sparse"
)

// Label mirrors the two string labels the source's classifier ever assigns.
type Label string

const (
	Benign    Label = "benign"
	Malicious Label = "malicious"
	Unknown   Label = "?"
)

// Predictor is the external random-forest boundary: given a batch of
// feature rows, it returns each row's [P(benign), P(malicious)]
// probability pair, mirroring sklearn's predict_proba output shape.
type Predictor interface {
	Predict(ctx context.Context, rows *sparse.Matrix) ([][2]float64, error)
}

// SubprocessPredictor shells out to an external predictor process once per
// call, passing feature rows as JSON on stdin and reading probabilities
// back as JSON on stdout — the delegation boundary spec.md requires, using
// os/exec the way the teacher's sink registry recognizes exec.Command
// usage in analyzed code (here used directly, not just matched).
type SubprocessPredictor struct {
	Command string
	Args    []string
}

type predictRequest struct {
	Rows [][]float64 `json:"rows"`
}

type predictResponse struct {
	Probabilities [][2]float64 `json:"probabilities"`
}

// Predict serializes rows to dense feature vectors (the external model
// speaks plain JSON arrays, not CSR), invokes the configured command, and
// decodes its response.
func (p *SubprocessPredictor) Predict(ctx context.Context, rows *sparse.Matrix) ([][2]float64, error) {
	req := predictRequest{Rows: make([][]float64, rows.Rows)}
	for i := 0; i < rows.Rows; i++ {
		req.Rows[i] = rows.Row(i)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("classifier: encode request: %w", err)
	}

	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("classifier: predictor process failed: %w (stderr: %s)", err, stderr.String())
	}

	var resp predictResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("classifier: decode predictor response: %w", err)
	}
	if len(resp.Probabilities) != rows.Rows {
		return nil, fmt.Errorf("classifier: predictor returned %d probability rows for %d input rows", len(resp.Probabilities), rows.Rows)
	}
	return resp.Probabilities, nil
}

// PredictLabels converts per-row [benign, malicious] probabilities into
// labels using threshold as the cutoff on P(malicious), mirroring
// predict_labels_using_threshold exactly (>= threshold is malicious).
func PredictLabels(proba [][2]float64, threshold float64) []Label {
	labels := make([]Label, len(proba))
	for i, p := range proba {
		if p[1] >= threshold {
			labels[i] = Malicious
		} else {
			labels[i] = Benign
		}
	}
	return labels
}
