package model

// Report summarizes classifier quality against known labels.
type Report struct {
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
}

// Evaluate builds a confusion-matrix report from predicted and actual
// labels. Both slices must be the same length.
func Evaluate(predicted, actual []int) Report {
	var r Report
	for i, p := range predicted {
		switch {
		case p == 1 && actual[i] == 1:
			r.TruePositives++
		case p == 0 && actual[i] == 0:
			r.TrueNegatives++
		case p == 1 && actual[i] == 0:
			r.FalsePositives++
		default:
			r.FalseNegatives++
		}
	}
	return r
}

func (r Report) Total() int {
	return r.TruePositives + r.TrueNegatives + r.FalsePositives + r.FalseNegatives
}

func (r Report) Accuracy() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(r.TruePositives+r.TrueNegatives) / float64(r.Total())
}

func (r Report) Precision() float64 {
	if r.TruePositives+r.FalsePositives == 0 {
		return 0
	}
	return float64(r.TruePositives) / float64(r.TruePositives+r.FalsePositives)
}

func (r Report) Recall() float64 {
	if r.TruePositives+r.FalseNegatives == 0 {
		return 0
	}
	return float64(r.TruePositives) / float64(r.TruePositives+r.FalseNegatives)
}

func (r Report) F1() float64 {
	p, rec := r.Precision(), r.Recall()
	if p+rec == 0 {
		return 0
	}
	return 2 * p * rec / (p + rec)
}
