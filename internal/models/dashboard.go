package models

// VolumeDataPoint is one point of the dashboard volume chart. Date is a
// zero-padded MM.dd label already shifted into the caller's timezone.
type VolumeDataPoint struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
}

// WorkoutDashboard is the per-user, per-timezone dashboard snapshot.
// HeatmapLevels always holds exactly 365 entries; index 0 corresponds to
// HeatmapStartDate and index 364 to "today" in the caller's timezone.
type WorkoutDashboard struct {
	TotalVolume      float64                `json:"total_volume"`
	TotalWorkouts    int64                  `json:"total_workouts"`
	MonthlyWorkouts  int64                  `json:"monthly_workouts"`
	RecentSessions   []WorkoutSessionDetail `json:"recent_sessions"`
	VolumeChartData  []VolumeDataPoint      `json:"volume_chart_data"`
	HeatmapStartDate string                 `json:"heatmap_start_date"`
	HeatmapLevels    []int                  `json:"heatmap_levels"`
}
