package models

import "math"

// TrafficSample is the one-second throughput of a single interface
type TrafficSample struct {
	Interface         string  `json:"interface"`
	InputBytesPerSec  float64 `json:"input_bytes_per_sec"`  // download
	OutputBytesPerSec float64 `json:"output_bytes_per_sec"` // upload
}

// Valid reports whether both rates are finite and non-negative
func (s TrafficSample) Valid() bool {
	return validRate(s.InputBytesPerSec) && validRate(s.OutputBytesPerSec)
}

func validRate(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
