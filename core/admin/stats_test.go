package admin

import "testing"

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name    string
		totals  Totals
		wantPct int
		wantAvg int
	}{
		{name: "no users", totals: Totals{}, wantPct: 0, wantAvg: 0},
		{name: "no users but messages", totals: Totals{TotalMessages: 7}, wantPct: 0, wantAvg: 0},
		{name: "half mentors", totals: Totals{TotalUsers: 10, MentorCount: 5, TotalMessages: 20}, wantPct: 50, wantAvg: 2},
		{name: "rounding up", totals: Totals{TotalUsers: 3, MentorCount: 2, TotalMessages: 5}, wantPct: 67, wantAvg: 2},
		{name: "rounding down", totals: Totals{TotalUsers: 3, MentorCount: 1, TotalMessages: 4}, wantPct: 33, wantAvg: 1},
		{name: "all mentors", totals: Totals{TotalUsers: 4, MentorCount: 4}, wantPct: 100, wantAvg: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.totals)
			if got.MentorPercentage != tt.wantPct {
				t.Errorf("MentorPercentage = %d, want %d", got.MentorPercentage, tt.wantPct)
			}
			if got.AvgMessagesPerUser != tt.wantAvg {
				t.Errorf("AvgMessagesPerUser = %d, want %d", got.AvgMessagesPerUser, tt.wantAvg)
			}
			if got.Totals != tt.totals {
				t.Errorf("Totals = %+v, want %+v", got.Totals, tt.totals)
			}
		})
	}
}
