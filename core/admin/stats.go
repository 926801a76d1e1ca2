package admin

import "math"

// Totals are the raw collection counts the statistics derive from.
type Totals struct {
	TotalUsers         int `json:"total_users"`
	TotalMessages      int `json:"total_messages"`
	TotalAnnouncements int `json:"total_announcements"`
	MentorCount        int `json:"mentor_count"`
}

// Stats are the Totals plus the derived display ratios.
type Stats struct {
	Totals
	MentorPercentage   int `json:"mentor_percentage"`
	AvgMessagesPerUser int `json:"avg_messages_per_user"`
}

// ComputeStats derives the dashboard ratios from raw counts. Division by
// zero is never an error: with no users yet both ratios degrade to 0.
func ComputeStats(t Totals) Stats {
	s := Stats{Totals: t}
	if t.TotalUsers > 0 {
		s.MentorPercentage = int(math.Round(100 * float64(t.MentorCount) / float64(t.TotalUsers)))
		s.AvgMessagesPerUser = int(math.Round(float64(t.TotalMessages) / float64(t.TotalUsers)))
	}
	return s
}
