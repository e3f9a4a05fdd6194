package analytics

import "github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"

// Reconcile merges per-store snapshots of the same metric without weight
// series; rate kinds then degrade to an unweighted mean.
func Reconcile(snapshots []domain.MetricSnapshot, kind domain.MetricKind) domain.MetricSnapshot {
	return ReconcileWeighted(snapshots, nil, kind)
}

// ReconcileWeighted merges per-store snapshots into one aggregate. weights[i]
// holds store i's visitor or order snapshot for rate kinds and is ignored for
// additive ones.
//
// Zero stores yield a zero snapshot and a single store is returned unchanged.
// The merged PercentChange is always 0: per-store percentages do not add up,
// callers recompute growth from the merged absolute values.
func ReconcileWeighted(snapshots, weights []domain.MetricSnapshot, kind domain.MetricKind) domain.MetricSnapshot {
	switch len(snapshots) {
	case 0:
		return domain.ZeroSnapshot()
	case 1:
		return snapshots[0]
	}

	sparklines := make([][]domain.TimeSeriesPoint, len(snapshots))
	for i, s := range snapshots {
		sparklines[i] = s.Sparkline
	}

	var current, previous float64
	var weightLines [][]domain.TimeSeriesPoint

	if kind == domain.Additive {
		for _, s := range snapshots {
			current += s.Current
			previous += s.Previous
		}
	} else {
		var curNum, curDen, prevNum, prevDen float64
		weightLines = make([][]domain.TimeSeriesPoint, len(snapshots))
		for i, s := range snapshots {
			curW, prevW := 1.0, 1.0
			if i < len(weights) {
				curW, prevW = weights[i].Current, weights[i].Previous
				weightLines[i] = weights[i].Sparkline
			}
			curNum += s.Current * curW
			curDen += curW
			prevNum += s.Previous * prevW
			prevDen += prevW
		}
		current = safeDivide(curNum, curDen)
		previous = safeDivide(prevNum, prevDen)
	}

	return domain.MetricSnapshot{
		Current:        current,
		Previous:       previous,
		PercentChange:  0,
		TrendDirection: domain.TrendOf(current, previous),
		Sparkline:      MergeSeries(sparklines, weightLines, kind),
	}
}
