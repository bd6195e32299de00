package notify

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Settings mirror the app's notification preferences, persisted as a
// single JSON document.
type Settings struct {
	Enabled          bool `json:"enabled"`
	SoundEnabled     bool `json:"sound_enabled"`
	VibrationEnabled bool `json:"vibration_enabled"`
	Reminders        struct {
		OneWeekBefore bool `json:"one_week_before"`
		OneDayBefore  bool `json:"one_day_before"`
		OneHourBefore bool `json:"one_hour_before"`
		OnBirthday    bool `json:"on_birthday"`
	} `json:"reminders"`
}

// DefaultSettings: reminders on, day-before and on-day enabled.
func DefaultSettings() Settings {
	s := Settings{Enabled: true, SoundEnabled: true, VibrationEnabled: true}
	s.Reminders.OneDayBefore = true
	s.Reminders.OnBirthday = true
	return s
}

// Offsets returns the enabled reminder offsets, or nil when
// notifications are disabled entirely.
func (s Settings) Offsets() []Offset {
	if !s.Enabled {
		return nil
	}
	var offsets []Offset
	if s.Reminders.OneWeekBefore {
		offsets = append(offsets, OneWeekBefore)
	}
	if s.Reminders.OneDayBefore {
		offsets = append(offsets, OneDayBefore)
	}
	if s.Reminders.OneHourBefore {
		offsets = append(offsets, OneHourBefore)
	}
	if s.Reminders.OnBirthday {
		offsets = append(offsets, OnBirthday)
	}
	return offsets
}

// SettingsPath returns the settings file location. The base directory
// can be overridden via BIRTHDAYS_DATA_PATH.
func SettingsPath() (string, error) {
	base := os.Getenv("BIRTHDAYS_DATA_PATH")
	if base == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(cfgDir, "BirthdayKeeper")
	}
	if err := os.MkdirAll(base, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(base, "notification_settings.json"), nil
}

// LoadSettings reads the persisted settings, falling back to defaults
// when the file is missing.
func LoadSettings(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), err
	}
	var s Settings
	if err := json.Unmarshal(b, &s); err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

// SaveSettings persists the settings document.
func SaveSettings(path string, s Settings) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
