package models

import "time"

// TrafficHistory holds the short-term rate history used for trend graphs.
// TotalTraffic[i] == Download[i] + Upload[i].
type TrafficHistory struct {
	Download     []float64 `json:"download"`
	Upload       []float64 `json:"upload"`
	TotalTraffic []float64 `json:"total_traffic"`
}

// Snapshot is published after every successful tick
type Snapshot struct {
	Interface     string         `json:"interface"`
	Text          string         `json:"text"`
	Download      float64        `json:"download"` // bytes/sec
	Upload        float64        `json:"upload"`   // bytes/sec
	TotalDownload float64        `json:"total_download"`
	TotalUpload   float64        `json:"total_upload"`
	History       TrafficHistory `json:"history"`
	Font          FontMetrics    `json:"font"`
	System        *SystemStats   `json:"system,omitempty"`
	SessionStart  time.Time      `json:"session_start"`
	Timestamp     time.Time      `json:"timestamp"`
}
