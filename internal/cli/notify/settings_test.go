package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func zapNop() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func TestSettings_Offsets(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, []Offset{OneDayBefore, OnBirthday}, s.Offsets())

	s.Reminders.OneWeekBefore = true
	s.Reminders.OneHourBefore = true
	assert.Equal(t, []Offset{OneWeekBefore, OneDayBefore, OneHourBefore, OnBirthday}, s.Offsets())

	s.Enabled = false
	assert.Nil(t, s.Offsets(), "disabled notifications yield no offsets")
}

func TestSettings_SaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notification_settings.json")

	s := DefaultSettings()
	s.SoundEnabled = false
	s.Reminders.OneWeekBefore = true
	assert.NoError(t, SaveSettings(path, s))

	loaded, err := LoadSettings(path)
	assert.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestSettings_MissingFileFallsBackToDefaults(t *testing.T) {
	loaded, err := LoadSettings(filepath.Join(t.TempDir(), "absent.json"))
	assert.NoError(t, err)
	assert.Equal(t, DefaultSettings(), loaded)
}

func TestSettings_CorruptFileFallsBackWithError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notification_settings.json")
	assert.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

	loaded, err := LoadSettings(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultSettings(), loaded)
}

func TestSettingsPath_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BIRTHDAYS_DATA_PATH", dir)

	path, err := SettingsPath()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notification_settings.json"), path)
}
