package services

import (
	"errors"
	"fmt"
	"sync"

	"netbar/internal/models"
)

// ErrInvalidSettings is returned when an update would leave the settings invalid
var ErrInvalidSettings = errors.New("invalid settings")

// SettingsReader hands out the latest settings as one consistent copy
type SettingsReader interface {
	Current() models.Settings
}

// SettingsPatch is a partial update; nil fields are left unchanged
type SettingsPatch struct {
	UnitType    *models.UnitType    `json:"unit_type"`
	FixedUnit   *models.FixedUnit   `json:"fixed_unit"`
	DisplayMode *models.DisplayMode `json:"display_mode"`
	ShowArrows  *bool               `json:"show_arrows"`
	Stacked     *bool               `json:"stacked"`
	ShowCPU     *bool               `json:"show_cpu"`
	ShowMemory  *bool               `json:"show_memory"`
	ShowDisk    *bool               `json:"show_disk"`
	FontSize    *float64            `json:"font_size"`
	LineSpacing *float64            `json:"line_spacing"`
	Kerning     *float64            `json:"kerning"`
}

func (p SettingsPatch) apply(s models.Settings) models.Settings {
	if p.UnitType != nil {
		s.Formatting.UnitType = *p.UnitType
	}
	if p.FixedUnit != nil {
		s.Formatting.FixedUnit = *p.FixedUnit
	}
	if p.DisplayMode != nil {
		s.Formatting.DisplayMode = *p.DisplayMode
	}
	if p.ShowArrows != nil {
		s.Formatting.ShowArrows = *p.ShowArrows
	}
	if p.Stacked != nil {
		s.Formatting.Stacked = *p.Stacked
	}
	if p.ShowCPU != nil {
		s.Visibility.CPU = *p.ShowCPU
	}
	if p.ShowMemory != nil {
		s.Visibility.Memory = *p.ShowMemory
	}
	if p.ShowDisk != nil {
		s.Visibility.Disk = *p.ShowDisk
	}
	if p.FontSize != nil {
		s.Font.Size = *p.FontSize
	}
	if p.LineSpacing != nil {
		s.Font.LineSpacing = *p.LineSpacing
	}
	if p.Kerning != nil {
		s.Font.Kerning = *p.Kerning
	}
	return s
}

// SettingsStore holds the user preferences read at the start of every tick
type SettingsStore struct {
	mu       sync.RWMutex
	settings models.Settings
	persist  func(models.Settings) error
}

// NewSettingsStore creates a store seeded with initial.
// persist is called after every successful update and may be nil.
func NewSettingsStore(initial models.Settings, persist func(models.Settings) error) *SettingsStore {
	return &SettingsStore{
		settings: initial,
		persist:  persist,
	}
}

// Current returns a copy of the settings
func (s *SettingsStore) Current() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update validates and applies a patch, then persists the result.
// An invalid patch leaves the settings untouched.
func (s *SettingsStore) Update(patch SettingsPatch) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := patch.apply(s.settings)
	if err := next.Validate(); err != nil {
		return s.settings, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	s.settings = next

	if s.persist != nil {
		if err := s.persist(next); err != nil {
			return next, fmt.Errorf("failed to persist settings: %w", err)
		}
	}
	return next, nil
}
