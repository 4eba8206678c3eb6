package services

import (
	"fmt"
	"time"

	"netbar/internal/models"
)

const KB = 1024

var (
	byteUnits = []string{" B", "KB", "MB", "GB", "TB"}
	bitUnits  = []string{" b", "Kb", "Mb", "Gb", "Tb"}
)

// ScaleRate converts a bytes/sec rate into the value shown and the index of
// its unit in the active unit table.
//
// Fixed units divide exactly once and are never clamped. Auto-scaling only
// promotes while the value is strictly greater than 1024, so 1024.00 stays in
// the smaller unit.
func ScaleRate(value float64, cfg models.FormattingConfig) (float64, int) {
	if cfg.UnitType == models.UnitBits {
		value *= 8
	}

	switch cfg.FixedUnit {
	case models.FixedKB:
		return value / KB, 1
	case models.FixedMB:
		return value / (KB * KB), 2
	}

	return autoScale(value, len(byteUnits))
}

func autoScale(value float64, units int) (float64, int) {
	index := 0
	for value > KB && index < units-1 {
		value /= KB
		index++
	}
	return value, index
}

// FormatRate renders a bytes/sec rate as a padded number and a unit label,
// e.g. (" 11.44", "Mbps") or ("500.00", " B/s").
func FormatRate(value float64, cfg models.FormattingConfig) (string, string) {
	scaled, index := ScaleRate(value, cfg)

	if cfg.UnitType == models.UnitBits {
		return fmt.Sprintf("%6.2f", scaled), bitUnits[index] + "ps"
	}
	return fmt.Sprintf("%6.2f", scaled), byteUnits[index] + "/s"
}

// FormatTotal renders a byte count, always in byte units
func FormatTotal(bytes float64) (string, string) {
	scaled, index := autoScale(bytes, len(byteUnits))
	return fmt.Sprintf("%.2f", scaled), byteUnits[index]
}

// FormatUptime renders a session duration as HH:MM:SS
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
