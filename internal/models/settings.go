package models

import "fmt"

// UnitType selects between byte and bit units
type UnitType string

const (
	UnitBytes UnitType = "bytes"
	UnitBits  UnitType = "bits"
)

func (u UnitType) Valid() bool {
	return u == UnitBytes || u == UnitBits
}

// FixedUnit forces a scale instead of auto-scaling
type FixedUnit string

const (
	FixedAuto FixedUnit = "auto"
	FixedKB   FixedUnit = "kb"
	FixedMB   FixedUnit = "mb"
)

func (f FixedUnit) Valid() bool {
	return f == FixedAuto || f == FixedKB || f == FixedMB
}

// DisplayMode selects which network segments are shown
type DisplayMode string

const (
	DisplayBoth         DisplayMode = "both"
	DisplayDownloadOnly DisplayMode = "downloadOnly"
	DisplayUploadOnly   DisplayMode = "uploadOnly"
)

func (d DisplayMode) Valid() bool {
	return d == DisplayBoth || d == DisplayDownloadOnly || d == DisplayUploadOnly
}

// ShowsUpload reports whether the upload segment is rendered
func (d DisplayMode) ShowsUpload() bool {
	return d == DisplayBoth || d == DisplayUploadOnly
}

// ShowsDownload reports whether the download segment is rendered
func (d DisplayMode) ShowsDownload() bool {
	return d == DisplayBoth || d == DisplayDownloadOnly
}

// FormattingConfig controls how rates are rendered
type FormattingConfig struct {
	UnitType    UnitType    `json:"unit_type" yaml:"unit_type"`
	FixedUnit   FixedUnit   `json:"fixed_unit" yaml:"fixed_unit"`
	DisplayMode DisplayMode `json:"display_mode" yaml:"display_mode"`
	ShowArrows  bool        `json:"show_arrows" yaml:"show_arrows"`
	Stacked     bool        `json:"stacked" yaml:"stacked"`
}

// SystemVisibility selects which system stat segments are appended
type SystemVisibility struct {
	CPU    bool `json:"cpu" yaml:"cpu"`
	Memory bool `json:"memory" yaml:"memory"`
	Disk   bool `json:"disk" yaml:"disk"`
}

// Any reports whether at least one system segment is enabled
func (v SystemVisibility) Any() bool {
	return v.CPU || v.Memory || v.Disk
}

// FontMetrics are passed through to the icon renderer
type FontMetrics struct {
	Size        float64 `json:"size" yaml:"size"`
	LineSpacing float64 `json:"line_spacing" yaml:"line_spacing"`
	Kerning     float64 `json:"kerning" yaml:"kerning"`
}

// Settings is everything a tick reads from the settings store
type Settings struct {
	Formatting FormattingConfig `json:"formatting" yaml:"formatting"`
	Visibility SystemVisibility `json:"visibility" yaml:"visibility"`
	Font       FontMetrics      `json:"font" yaml:"font"`
}

// DefaultSettings mirrors the defaults of the menu-bar preferences
func DefaultSettings() Settings {
	return Settings{
		Formatting: FormattingConfig{
			UnitType:    UnitBytes,
			FixedUnit:   FixedAuto,
			DisplayMode: DisplayBoth,
			ShowArrows:  true,
		},
		Font: FontMetrics{Size: 9},
	}
}

// Validate rejects unknown enum values and a non-positive font size
func (s Settings) Validate() error {
	if !s.Formatting.UnitType.Valid() {
		return fmt.Errorf("unknown unit_type %q", s.Formatting.UnitType)
	}
	if !s.Formatting.FixedUnit.Valid() {
		return fmt.Errorf("unknown fixed_unit %q", s.Formatting.FixedUnit)
	}
	if !s.Formatting.DisplayMode.Valid() {
		return fmt.Errorf("unknown display_mode %q", s.Formatting.DisplayMode)
	}
	if s.Font.Size <= 0 {
		return fmt.Errorf("font size must be > 0")
	}
	return nil
}
