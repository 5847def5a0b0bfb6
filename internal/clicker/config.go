// Package clicker implements the autoclick engine and its shared settings.
package clicker

import "sync"

// Mode selects what one click does.
type Mode int

const (
	ModeLeft Mode = iota
	ModeRight
	ModeDouble
)

// ParseMode accepts "left", "right" and "double". Anything else is a left
// click.
func ParseMode(s string) Mode {
	switch s {
	case "right":
		return ModeRight
	case "double":
		return ModeDouble
	}
	return ModeLeft
}

func (m Mode) String() string {
	switch m {
	case ModeRight:
		return "right"
	case ModeDouble:
		return "double"
	}
	return "left"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	*m = ParseMode(string(b))
	return nil
}

// Config is the autoclicker configuration. CPS == 0 keeps the engine idle
// whatever Enabled says.
type Config struct {
	Enabled      bool   `json:"running" yaml:"-"`
	CPS          uint64 `json:"cps" yaml:"cps"`
	RandomnessMs uint64 `json:"randomness" yaml:"randomness_ms"`
	Humanize     bool   `json:"humanization_enabled" yaml:"humanization"`
	ToggleKey    string `json:"toggle_key" yaml:"toggle_key"`
	Mode         Mode   `json:"click_mode" yaml:"click_mode"`
}

// Default returns the startup configuration.
func Default() Config {
	return Config{
		CPS:       10,
		Humanize:  true,
		ToggleKey: "F6",
		Mode:      ModeLeft,
	}
}

// Settings is the externally editable part of Config.
type Settings struct {
	CPS          uint64 `json:"cps"`
	RandomnessMs uint64 `json:"randomness"`
	Humanize     bool   `json:"humanization_enabled"`
	ToggleKey    string `json:"toggle_key"`
	Mode         Mode   `json:"click_mode"`
}

// Store guards a Config. The lock is never held across a sleep or an
// injection; callers copy out what they need.
type Store struct {
	mu  sync.Mutex
	cfg Config
}

func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Snapshot returns a copy of the configuration.
func (s *Store) Snapshot() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// ToggleKey returns the configured toggle hotkey.
func (s *Store) ToggleKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.ToggleKey
}

// Toggle flips Enabled and returns the resulting configuration.
func (s *Store) Toggle() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Enabled = !s.cfg.Enabled
	return s.cfg
}

// Update replaces the editable fields without validation.
func (s *Store) Update(st Settings) Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.CPS = st.CPS
	s.cfg.RandomnessMs = st.RandomnessMs
	s.cfg.Humanize = st.Humanize
	s.cfg.ToggleKey = st.ToggleKey
	s.cfg.Mode = st.Mode
	return s.cfg
}
