package domain

import "testing"

func TestRunSummary_Record(t *testing.T) {
	var s RunSummary
	s.Record(true)
	s.Record(true)
	s.Record(false)

	if s.Total != 3 || s.Succeeded != 2 || s.Failed != 1 {
		t.Errorf("summary = %+v, want 3/2/1", s)
	}
}

func TestRunSummary_SuccessRate(t *testing.T) {
	tests := []struct {
		name    string
		summary RunSummary
		want    string
	}{
		{"empty run", RunSummary{}, "0%"},
		{"all succeeded", RunSummary{Total: 4, Succeeded: 4}, "100.0%"},
		{"two thirds", RunSummary{Total: 3, Succeeded: 2, Failed: 1}, "66.7%"},
		{"none succeeded", RunSummary{Total: 2, Failed: 2}, "0.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.SuccessRate(); got != tt.want {
				t.Errorf("SuccessRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunSummary_AllSucceeded(t *testing.T) {
	if !(RunSummary{}).AllSucceeded() {
		t.Error("empty run should count as all succeeded")
	}
	if !(RunSummary{Total: 2, Succeeded: 2}).AllSucceeded() {
		t.Error("fully successful run should count as all succeeded")
	}
	if (RunSummary{Total: 2, Succeeded: 1, Failed: 1}).AllSucceeded() {
		t.Error("run with a failure should not count as all succeeded")
	}
}
