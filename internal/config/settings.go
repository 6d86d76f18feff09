package config

import (
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyRosterJSON     = "roster_entries"
	KeyNicknamePrefix = "nickname_prefix"
	KeySessionToken   = "session_token"
	KeyBaseURL        = "community_base_url"
	KeyOwnSteamID     = "profile_steam_id"
	KeyApplyDelayMS   = "request_delay_ms"
	KeyRetryDelayMS   = "retry_delay_ms"
	KeyCleanupDelayMS = "cleanup_delay_ms"
)

// Default values
const (
	DefaultBaseURL        = "https://steamcommunity.com"
	DefaultApplyDelayMS   = 1500
	DefaultRetryDelayMS   = 500
	DefaultCleanupDelayMS = 1000

	// Delay clamping bounds. The remote service enforces informal rate
	// limits, so the floor keeps requests from being fired back to back.
	MinDelayMS = 100
	MaxDelayMS = 10000
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// RosterJSON returns the persisted roster payload, empty when none was saved.
func (s *Settings) RosterJSON() string {
	return s.app.Preferences().String(KeyRosterJSON)
}

// SetRosterJSON persists the roster payload.
func (s *Settings) SetRosterJSON(payload string) {
	s.app.Preferences().SetString(KeyRosterJSON, payload)
}

// GetPrefix returns the configured nickname prefix, empty when unset.
// An empty prefix disables the cleanup pass.
func (s *Settings) GetPrefix() string {
	return s.app.Preferences().String(KeyNicknamePrefix)
}

// SetPrefix sets the nickname prefix
func (s *Settings) SetPrefix(prefix string) {
	s.app.Preferences().SetString(KeyNicknamePrefix, prefix)
}

// GetSessionToken returns the manually configured session token, empty when
// the token should be harvested from the signed-in community session instead.
func (s *Settings) GetSessionToken() string {
	return s.app.Preferences().String(KeySessionToken)
}

// SetSessionToken sets the manual session token
func (s *Settings) SetSessionToken(token string) {
	s.app.Preferences().SetString(KeySessionToken, token)
}

// GetOwnSteamID returns the identifier of the signed-in profile whose
// friends page the cleanup pass scans, empty when not configured.
func (s *Settings) GetOwnSteamID() string {
	return s.app.Preferences().String(KeyOwnSteamID)
}

// SetOwnSteamID sets the signed-in profile identifier
func (s *Settings) SetOwnSteamID(steamID string) {
	s.app.Preferences().SetString(KeyOwnSteamID, steamID)
}

// GetBaseURL returns the community endpoint base URL
func (s *Settings) GetBaseURL() string {
	base := s.app.Preferences().String(KeyBaseURL)
	if base == "" {
		s.SetBaseURL(DefaultBaseURL)
		return DefaultBaseURL
	}
	return base
}

// SetBaseURL sets the community endpoint base URL
func (s *Settings) SetBaseURL(base string) {
	if base == "" {
		base = DefaultBaseURL
	}
	s.app.Preferences().SetString(KeyBaseURL, base)
}

// GetApplyDelay returns the delay inserted between consecutive apply requests
func (s *Settings) GetApplyDelay() time.Duration {
	return s.delay(KeyApplyDelayMS, DefaultApplyDelayMS)
}

// SetApplyDelay sets the delay between consecutive apply requests
func (s *Settings) SetApplyDelay(ms int) {
	s.setDelay(KeyApplyDelayMS, ms)
}

// GetRetryDelay returns the delay before the single retry of a failed request
func (s *Settings) GetRetryDelay() time.Duration {
	return s.delay(KeyRetryDelayMS, DefaultRetryDelayMS)
}

// SetRetryDelay sets the delay before the single retry of a failed request
func (s *Settings) SetRetryDelay(ms int) {
	s.setDelay(KeyRetryDelayMS, ms)
}

// GetCleanupDelay returns the delay between consecutive cleanup requests
func (s *Settings) GetCleanupDelay() time.Duration {
	return s.delay(KeyCleanupDelayMS, DefaultCleanupDelayMS)
}

// SetCleanupDelay sets the delay between consecutive cleanup requests
func (s *Settings) SetCleanupDelay(ms int) {
	s.setDelay(KeyCleanupDelayMS, ms)
}

func (s *Settings) delay(key string, fallback int) time.Duration {
	ms := s.app.Preferences().Int(key)
	if ms <= 0 {
		s.setDelay(key, fallback)
		return time.Duration(fallback) * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *Settings) setDelay(key string, ms int) {
	if ms < MinDelayMS {
		ms = MinDelayMS
	}
	if ms > MaxDelayMS {
		ms = MaxDelayMS
	}
	s.app.Preferences().SetInt(key, ms)
}
