// Package responses defines JSON response types used by postserve HTTP handlers.
package responses

import "time"

// HealthResponse represents the detailed health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
	// Sources lists the content sources in the order they are tried.
	Sources []string `json:"sources"`
}
