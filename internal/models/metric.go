package models

const (
	TrendStrong  = "strong"
	TrendNeutral = "neutral"
	TrendWeak    = "weak"
	TrendPoor    = "poor"
)

// Metric is a labelled dashboard value with an optional helper note and trend
// bucket, mirroring what the dashboard UI renders per tile.
type Metric struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Helper string `json:"helper,omitempty"`
	Trend  string `json:"trend,omitempty"`
}

// TrendForShare buckets a percentage share into a trend label. Band lower
// bounds are inclusive: >=60 strong, >=40 neutral, >=20 weak, below poor.
func TrendForShare(share float64) string {
	switch {
	case share >= 60:
		return TrendStrong
	case share >= 40:
		return TrendNeutral
	case share >= 20:
		return TrendWeak
	default:
		return TrendPoor
	}
}
