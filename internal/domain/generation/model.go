package generation

// Summary tallies one generation's projects by status.
type Summary struct {
	Generation     int `json:"generation"`
	TotalCount     int `json:"total_count"`
	ActiveCount    int `json:"active_count"`
	PendingCount   int `json:"pending_count"`
	GraduatedCount int `json:"graduated_count"`
}
