package config

// KeywordGroup is a named, colored, independently toggleable set of
// literal words highlighted automatically.
type KeywordGroup struct {
	// ID is a stable unique identifier, assigned at creation and kept
	// across renames and reloads.
	ID string `toml:"id" yaml:"id"`

	// Name is the user-visible group name.
	Name string `toml:"name" yaml:"name"`

	// Color is the highlight color as a hex string, e.g. "#ffb86c".
	Color string `toml:"color" yaml:"color"`

	// Words is the ordered word list. Blank entries are allowed here and
	// filtered at match time.
	Words []string `toml:"words" yaml:"words"`

	// Enabled toggles the whole group.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// CaseSensitive applies to every word in the group.
	CaseSensitive bool `toml:"case_sensitive" yaml:"case_sensitive"`
}

// Clone returns a deep copy of the group.
func (g KeywordGroup) Clone() KeywordGroup {
	out := g
	out.Words = append([]string(nil), g.Words...)
	return out
}

// Config is the persisted highlight configuration shape.
type Config struct {
	// Enabled is the master switch for live highlighting.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// Hotkey is the host-side toggle binding; the engine only stores it.
	Hotkey string `toml:"hotkey" yaml:"hotkey"`

	// SelectionColor is the highlight color for selection occurrences.
	SelectionColor string `toml:"selection_color" yaml:"selection_color"`

	// SelectionCaseSensitive controls selection-occurrence matching.
	SelectionCaseSensitive bool `toml:"selection_case_sensitive" yaml:"selection_case_sensitive"`

	// AutoKeyword enables keyword-group highlighting.
	AutoKeyword bool `toml:"auto_keyword" yaml:"auto_keyword"`

	// Groups is the ordered keyword group list. Declaration order is
	// also highlight precedence order.
	Groups []KeywordGroup `toml:"groups" yaml:"groups"`
}

// Default returns the default configuration: highlighting on, no groups.
func Default() Config {
	return Config{
		Enabled:        true,
		Hotkey:         "ctrl+shift+h",
		SelectionColor: "#3a5fcd",
		AutoKeyword:    true,
	}
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	out := c
	out.Groups = make([]KeywordGroup, len(c.Groups))
	for i, g := range c.Groups {
		out.Groups[i] = g.Clone()
	}
	return out
}

// GroupByID returns the index of the group with the given ID, or -1.
func (c Config) GroupByID(id string) int {
	for i, g := range c.Groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// Snapshot is an immutable copy of the configuration taken at the start
// of a recomputation. The engine reads only snapshots.
type Snapshot struct {
	Config
}

// Snapshot returns an immutable copy of this configuration.
func (c Config) Snapshot() Snapshot {
	return Snapshot{Config: c.Clone()}
}
