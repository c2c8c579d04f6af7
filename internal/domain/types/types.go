// Package types contains the wire shapes shared by the HTTP and CLI layers.
package types

// ScoreResult is the answer to a point-in-time score query.
type ScoreResult struct {
	Differential int `json:"differential" yaml:"differential"`
	Offset       int `json:"offset" yaml:"offset"`
}

// BatchRequest carries the offsets of a batch query.
type BatchRequest struct {
	Offsets []int `json:"offsets" yaml:"offsets"`
}

// BatchResponse carries batch answers in request order.
type BatchResponse struct {
	Results []ScoreResult `json:"results" yaml:"results"`
}

// TimelineSummary describes the generated timeline a process is serving.
type TimelineSummary struct {
	MatchID      string `json:"match_id" yaml:"match_id"`
	Stamps       int    `json:"stamps" yaml:"stamps"`
	LastOffset   int    `json:"last_offset" yaml:"last_offset"`
	Home         int    `json:"home" yaml:"home"`
	Away         int    `json:"away" yaml:"away"`
	Differential int    `json:"differential" yaml:"differential"`
	Seed         int64  `json:"seed" yaml:"seed"`
}
