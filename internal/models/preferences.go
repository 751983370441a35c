package models

import "time"

// DownloadPreferences controls track selection, content processing, and the
// retry behavior of a download call.
type DownloadPreferences struct {
	// Language narrows selection to this language code when tracks for it
	// exist; it is ignored silently otherwise.
	Language           string
	AllowAutoGenerated bool
	PreferManual       bool
	CleanContent       bool
	ValidateTiming     bool
	MaxRetries         int
	// Timeout bounds each HTTP request made by the pipeline.
	Timeout time.Duration
}

// DefaultPreferences returns the preferences used when the caller does not
// specify any.
func DefaultPreferences() DownloadPreferences {
	return DownloadPreferences{
		AllowAutoGenerated: true,
		PreferManual:       true,
		MaxRetries:         3,
		Timeout:            30 * time.Second,
	}
}
