// Package macro runs the scripted stash and quick-use sequences.
package macro

import "sync"

// Point is a screen position in pixels. The zero Point means unset.
type Point struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
}

func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Config is the macro configuration.
type Config struct {
	Part1Key   string `yaml:"part1_key"`
	Part2Key   string `yaml:"part2_key"`
	DodgeKey   string `yaml:"dodge_key"`
	SafePocket Point  `yaml:"safe_pocket"`
	QuickUse   Point  `yaml:"quick_use"`
	DelayMs    uint64 `yaml:"delay_ms"`
}

// Default returns the startup macro configuration. Both positions start
// unset, so neither macro runs until they are captured.
func Default() Config {
	return Config{
		Part1Key: "F7",
		Part2Key: "F8",
		DodgeKey: "AltLeft",
		DelayMs:  50,
	}
}

// Positioned reports whether both drag endpoints are set.
func (c Config) Positioned() bool {
	return !c.SafePocket.IsZero() && !c.QuickUse.IsZero()
}

// Settings is the flat wire form of Config.
type Settings struct {
	Part1Key    string `json:"part1_key"`
	Part2Key    string `json:"part2_key"`
	DodgeKey    string `json:"dodge_key"`
	SafePocketX int32  `json:"safe_pocket_x"`
	SafePocketY int32  `json:"safe_pocket_y"`
	QuickUseX   int32  `json:"quick_use_x"`
	QuickUseY   int32  `json:"quick_use_y"`
	DelayMs     uint64 `json:"delay_ms"`
}

func (c Config) Settings() Settings {
	return Settings{
		Part1Key:    c.Part1Key,
		Part2Key:    c.Part2Key,
		DodgeKey:    c.DodgeKey,
		SafePocketX: c.SafePocket.X,
		SafePocketY: c.SafePocket.Y,
		QuickUseX:   c.QuickUse.X,
		QuickUseY:   c.QuickUse.Y,
		DelayMs:     c.DelayMs,
	}
}

func (s Settings) Config() Config {
	return Config{
		Part1Key:   s.Part1Key,
		Part2Key:   s.Part2Key,
		DodgeKey:   s.DodgeKey,
		SafePocket: Point{X: s.SafePocketX, Y: s.SafePocketY},
		QuickUse:   Point{X: s.QuickUseX, Y: s.QuickUseY},
		DelayMs:    s.DelayMs,
	}
}

// Store guards a Config.
type Store struct {
	mu  sync.Mutex
	cfg Config
}

func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Snapshot returns a copy that later updates cannot change.
func (s *Store) Snapshot() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Update replaces every field and returns the new configuration.
func (s *Store) Update(st Settings) Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = st.Config()
	return s.cfg
}

// ActiveFlag is set for the whole duration of one macro run.
//
//	clear -> set    TryAcquire at the dispatch site
//	set   -> clear  Release when the run returns, aborted or not
type ActiveFlag struct {
	mu     sync.Mutex
	active bool
}

// TryAcquire sets the flag and reports true only if it was clear.
func (f *ActiveFlag) TryAcquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active {
		return false
	}
	f.active = true
	return true
}

func (f *ActiveFlag) Release() {
	f.mu.Lock()
	f.active = false
	f.mu.Unlock()
}

// Active satisfies clicker.Gate.
func (f *ActiveFlag) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}
