package domain

import "fmt"

// RunSummary is the batch tally: files considered, succeeded and failed.
// The success rate is derived, never stored.
type RunSummary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Record adds one file outcome to the tally.
func (s *RunSummary) Record(ok bool) {
	s.Total++
	if ok {
		s.Succeeded++
	} else {
		s.Failed++
	}
}

// SuccessRate formats the success percentage with one decimal place.
// A run over zero files reports the literal "0%".
func (s RunSummary) SuccessRate() string {
	if s.Total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(s.Succeeded)/float64(s.Total)*100)
}

// AllSucceeded reports whether every considered file was processed.
// True for an empty run.
func (s RunSummary) AllSucceeded() bool {
	return s.Failed == 0 && s.Succeeded == s.Total
}
