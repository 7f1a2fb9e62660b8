package probe

import "time"

// Config holds configuration for one probe run
type Config struct {
	BaseURL   string        // Base URL of the service
	Usernames []string      // Handles to request a report for
	Timeout   time.Duration // HTTP request timeout
	PerUser   bool          // Also exercise the per-user read endpoints
	Verbose   bool          // Enable verbose logging
}

// Stats holds probe statistics
type Stats struct {
	UsersRequested  int
	UsersFailed     int
	SubmissionRows  int
	CommonTitles    int
	UniqueTitles    int
	ChartLabels     int
	PerUserRequests int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
