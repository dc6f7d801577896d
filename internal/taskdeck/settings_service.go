package taskdeck

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskdeck/internal/core/eventbus"
	"github.com/colonyops/taskdeck/internal/core/kv"
)

// DarkModeKey is the key the dark-mode preference is persisted under.
// The value is the string "true" or "false".
const DarkModeKey = "darkMode"

// SettingsService owns the persisted presentation preferences.
type SettingsService struct {
	darkMode *kv.Typed[string]
	bus      *eventbus.EventBus
	log      zerolog.Logger
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store kv.KV, bus *eventbus.EventBus, log zerolog.Logger) *SettingsService {
	return &SettingsService{
		darkMode: kv.Key[string](store, DarkModeKey),
		bus:      bus,
		log:      log.With().Str("component", "settings-service").Logger(),
	}
}

// DarkMode returns the persisted dark-mode preference. Absent or
// corrupt data defaults to light mode.
func (s *SettingsService) DarkMode() bool {
	v, err := s.darkMode.Get()
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warn().Err(err).Msg("read dark mode preference")
		}
		return false
	}
	return v == "true"
}

// SetDarkMode persists the dark-mode preference and publishes
// theme.changed.
func (s *SettingsService) SetDarkMode(dark bool) error {
	if err := s.darkMode.Set(fmt.Sprintf("%t", dark)); err != nil {
		return fmt.Errorf("persist dark mode: %w", err)
	}

	s.bus.PublishThemeChanged(eventbus.ThemeChangedPayload{Dark: dark})
	return nil
}
