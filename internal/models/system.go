package models

import "time"

// SystemStats holds host resource usage percentages
type SystemStats struct {
	CPU         float64   `json:"cpu_percent"`
	Memory      float64   `json:"memory_percent"`
	Disk        float64   `json:"disk_percent"`
	CollectedAt time.Time `json:"collected_at"`
}
