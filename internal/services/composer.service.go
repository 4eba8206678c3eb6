package services

import (
	"fmt"
	"strings"

	"netbar/internal/models"
)

const (
	uploadArrow   = "↑ "
	downloadArrow = "↓ "
)

// Compose renders the menu-bar text for the current rates.
// Upload comes before download; system segments are appended with " | ".
func Compose(view RateView, cfg models.FormattingConfig, sys *models.SystemStats, vis models.SystemVisibility) string {
	var network []string

	if cfg.DisplayMode.ShowsUpload() {
		network = append(network, rateSegment(view.CurrentUpload, uploadArrow, cfg))
	}
	if cfg.DisplayMode.ShowsDownload() {
		network = append(network, rateSegment(view.CurrentDownload, downloadArrow, cfg))
	}

	separator := "\n"
	if cfg.Stacked {
		separator = " | "
	}
	text := strings.Join(network, separator)

	system := systemSegments(sys, vis)
	if len(system) > 0 {
		text = strings.Join(append([]string{text}, system...), " | ")
	}

	return strings.TrimSpace(text)
}

func rateSegment(value float64, arrow string, cfg models.FormattingConfig) string {
	num, unit := FormatRate(value, cfg)
	if !cfg.ShowArrows {
		arrow = ""
	}
	return arrow + num + " " + unit
}

func systemSegments(sys *models.SystemStats, vis models.SystemVisibility) []string {
	if sys == nil {
		return nil
	}

	var segments []string
	if vis.CPU {
		segments = append(segments, fmt.Sprintf("CPU: %d%%", int(sys.CPU)))
	}
	if vis.Memory {
		segments = append(segments, fmt.Sprintf("RAM: %d%%", int(sys.Memory)))
	}
	if vis.Disk {
		segments = append(segments, fmt.Sprintf("HDD: %d%%", int(sys.Disk)))
	}
	return segments
}
