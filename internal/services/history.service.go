package services

import (
	"time"

	"netbar/internal/models"
)

// HistoryCapacity is the number of samples kept for trend graphs (one minute at 1 Hz)
const HistoryCapacity = 60

// HistoryBuffer is a fixed-capacity FIFO of samples.
// Appending to a full buffer evicts the oldest value.
type HistoryBuffer struct {
	values   []float64
	capacity int
}

// NewHistoryBuffer creates an empty buffer; capacity <= 0 uses HistoryCapacity
func NewHistoryBuffer(capacity int) *HistoryBuffer {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}
	return &HistoryBuffer{
		values:   make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Push appends v, dropping the oldest value when the buffer is full
func (h *HistoryBuffer) Push(v float64) {
	if len(h.values) == h.capacity {
		copy(h.values, h.values[1:])
		h.values = h.values[:h.capacity-1]
	}
	h.values = append(h.values, v)
}

// Len returns the number of stored samples
func (h *HistoryBuffer) Len() int {
	return len(h.values)
}

// Values returns a copy of the samples, oldest first
func (h *HistoryBuffer) Values() []float64 {
	out := make([]float64, len(h.values))
	copy(out, h.values)
	return out
}

// RateState holds current rates, session totals and rate histories.
// It is owned by the Sampler and only mutated inside a tick.
type RateState struct {
	currentDownload float64
	currentUpload   float64
	totalDownload   float64
	totalUpload     float64

	downloadHistory     *HistoryBuffer
	uploadHistory       *HistoryBuffer
	totalTrafficHistory *HistoryBuffer

	sessionStart time.Time
}

// RateView is a read-only copy of RateState handed to downstream consumers
type RateView struct {
	CurrentDownload float64
	CurrentUpload   float64
	TotalDownload   float64
	TotalUpload     float64
	History         models.TrafficHistory
	SessionStart    time.Time
}

// NewRateState starts a session at sessionStart with empty histories
func NewRateState(sessionStart time.Time) *RateState {
	return &RateState{
		downloadHistory:     NewHistoryBuffer(HistoryCapacity),
		uploadHistory:       NewHistoryBuffer(HistoryCapacity),
		totalTrafficHistory: NewHistoryBuffer(HistoryCapacity),
		sessionStart:        sessionStart,
	}
}

// ApplySample records one tick's throughput
func (r *RateState) ApplySample(sample models.TrafficSample) {
	r.currentDownload = sample.InputBytesPerSec
	r.currentUpload = sample.OutputBytesPerSec

	r.totalDownload += r.currentDownload
	r.totalUpload += r.currentUpload

	r.downloadHistory.Push(r.currentDownload)
	r.uploadHistory.Push(r.currentUpload)
	r.totalTrafficHistory.Push(r.currentDownload + r.currentUpload)
}

// View copies the state so callers never share the history slices
func (r *RateState) View() RateView {
	return RateView{
		CurrentDownload: r.currentDownload,
		CurrentUpload:   r.currentUpload,
		TotalDownload:   r.totalDownload,
		TotalUpload:     r.totalUpload,
		History: models.TrafficHistory{
			Download:     r.downloadHistory.Values(),
			Upload:       r.uploadHistory.Values(),
			TotalTraffic: r.totalTrafficHistory.Values(),
		},
		SessionStart: r.sessionStart,
	}
}
