// Package provider defines the result types shared by external-service
// adapters. The services declare their own consumer-side interfaces; only
// the data shapes live here.
package provider

// Classification is the parsed result of one classifier call: a subset of
// the known category labels plus a difficulty score (1..5) per supported
// language. An unparseable classifier response never produces a
// Classification; the adapter fails the call instead of guessing shape.
type Classification struct {
	Categories       []string       `json:"categories"`
	DifficultyScores map[string]int `json:"difficulty_scores"`
}
