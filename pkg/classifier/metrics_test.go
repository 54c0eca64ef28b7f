package classifier

import "testing"

func TestPredictLabelsThresholdIsInclusive(t *testing.T) {
	proba := [][2]float64{
		{0.5, 0.5},
		{0.6, 0.4},
		{0.4, 0.6},
	}
	labels := PredictLabels(proba, 0.5)
	want := []Label{Malicious, Benign, Malicious}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %v, want %v", i, labels[i], want[i])
		}
	}
}

func TestComputeScore(t *testing.T) {
	labels := []Label{Malicious, Malicious, Benign, Benign}
	predicted := []Label{Malicious, Benign, Benign, Malicious}

	score, err := ComputeScore(labels, predicted)
	if err != nil {
		t.Fatalf("ComputeScore: %v", err)
	}
	if score.TP != 1 || score.FN != 1 || score.TN != 1 || score.FP != 1 {
		t.Fatalf("got TP=%d FN=%d TN=%d FP=%d, want 1 each", score.TP, score.FN, score.TN, score.FP)
	}
	if score.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", score.Accuracy)
	}
	if score.TPR != 0.5 || score.TNR != 0.5 {
		t.Errorf("TPR = %v, TNR = %v, want 0.5 each", score.TPR, score.TNR)
	}
}

func TestComputeScoreRejectsUnknownGroundTruth(t *testing.T) {
	_, err := ComputeScore([]Label{Unknown}, []Label{Benign})
	if err == nil {
		t.Fatal("expected an error when ground truth is unknown")
	}
}

func TestComputeScoreRejectsLengthMismatch(t *testing.T) {
	_, err := ComputeScore([]Label{Benign, Malicious}, []Label{Benign})
	if err == nil {
		t.Fatal("expected an error on length mismatch")
	}
}

func TestComputeScorePerfectAgreement(t *testing.T) {
	labels := []Label{Malicious, Benign, Malicious, Benign}
	score, err := ComputeScore(labels, labels)
	if err != nil {
		t.Fatalf("ComputeScore: %v", err)
	}
	if score.Accuracy != 1 || score.TPR != 1 || score.TNR != 1 {
		t.Fatalf("got Accuracy=%v TPR=%v TNR=%v, want all 1", score.Accuracy, score.TPR, score.TNR)
	}
}
