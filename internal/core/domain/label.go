package domain

// MatchLabel is the quality band shown instead of a raw fused score.
// Reciprocal-rank scores cluster in a narrow range (a candidate ranked
// first in both retrieval lists scores 2/61, about 0.033), which reads
// as a terrible percentage. The band communicates relative quality
// instead.
type MatchLabel string

// Match labels, worst to best.
const (
	LabelWeak      MatchLabel = "weak"
	LabelFair      MatchLabel = "fair"
	LabelGood      MatchLabel = "good"
	LabelStrong    MatchLabel = "strong"
	LabelExcellent MatchLabel = "excellent"
)

// Label thresholds over the fused score, calibrated to RRF with k=60
// over two lists. A top rank in a single list scores 1/61 (0.0164) and
// lands in "good"; only candidates found by both retrievers can reach
// "strong" or "excellent".
const (
	labelExcellentMin = 0.030
	labelStrongMin    = 0.024
	labelGoodMin      = 0.015
	labelFairMin      = 0.008
)

// LabelForScore maps a fused score to its band. It is a pure function
// of the score: deterministic, and monotonic so a strictly higher score
// never receives a worse label.
func LabelForScore(score float64) MatchLabel {
	switch {
	case score >= labelExcellentMin:
		return LabelExcellent
	case score >= labelStrongMin:
		return LabelStrong
	case score >= labelGoodMin:
		return LabelGood
	case score >= labelFairMin:
		return LabelFair
	default:
		return LabelWeak
	}
}

// IsValid returns true if the label is recognised.
func (l MatchLabel) IsValid() bool {
	switch l {
	case LabelWeak, LabelFair, LabelGood, LabelStrong, LabelExcellent:
		return true
	default:
		return false
	}
}

// Level returns the ordinal position of the band, 0 (weak) to
// 4 (excellent). Useful for comparing bands.
func (l MatchLabel) Level() int {
	switch l {
	case LabelFair:
		return 1
	case LabelGood:
		return 2
	case LabelStrong:
		return 3
	case LabelExcellent:
		return 4
	default:
		return 0
	}
}

// String returns the string representation.
func (l MatchLabel) String() string {
	return string(l)
}

// Description returns a human-readable description of the band.
func (l MatchLabel) Description() string {
	switch l {
	case LabelWeak:
		return "Weak match"
	case LabelFair:
		return "Fair match"
	case LabelGood:
		return "Good match"
	case LabelStrong:
		return "Strong match"
	case LabelExcellent:
		return "Excellent match"
	default:
		return unknownDescription
	}
}

// AllMatchLabels returns the bands in ascending quality order.
func AllMatchLabels() []MatchLabel {
	return []MatchLabel{
		LabelWeak,
		LabelFair,
		LabelGood,
		LabelStrong,
		LabelExcellent,
	}
}
