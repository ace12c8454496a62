package config

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/keylight/internal/config/notify"
)

// Errors returned by store mutations.
var (
	ErrGroupNotFound = errors.New("keyword group not found")
	ErrWordNotFound  = errors.New("word not found in group")
)

// Store owns the live configuration and serializes all mutation.
// Observers subscribed through the notifier receive a change event after
// every successful mutation.
type Store struct {
	mu       sync.RWMutex
	cfg      Config
	notifier *notify.Notifier
}

// NewStore creates a store holding the given configuration.
func NewStore(cfg Config) *Store {
	return &Store{
		cfg:      cfg.Clone(),
		notifier: notify.New(),
	}
}

// Notifier returns the store's change notifier.
func (s *Store) Notifier() *notify.Notifier {
	return s.notifier
}

// Snapshot returns an immutable copy of the current configuration.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Snapshot()
}

// Replace swaps in an entirely new configuration (e.g. after a file
// reload) and notifies observers with a reload change.
func (s *Store) Replace(cfg Config) {
	s.mu.Lock()
	s.cfg = cfg.Clone()
	s.mu.Unlock()
	s.notifier.Notify(notify.Change{Path: "", Type: notify.ChangeReload, Source: "store"})
}

// SetEnabled toggles live highlighting.
func (s *Store) SetEnabled(on bool) {
	s.setFlag("enabled", func(c *Config) { c.Enabled = on })
}

// SetAutoKeyword toggles keyword-group highlighting.
func (s *Store) SetAutoKeyword(on bool) {
	s.setFlag("auto_keyword", func(c *Config) { c.AutoKeyword = on })
}

// SetSelectionCaseSensitive toggles case sensitivity for selection matches.
func (s *Store) SetSelectionCaseSensitive(on bool) {
	s.setFlag("selection_case_sensitive", func(c *Config) { c.SelectionCaseSensitive = on })
}

func (s *Store) setFlag(path string, apply func(*Config)) {
	s.mu.Lock()
	apply(&s.cfg)
	s.mu.Unlock()
	s.notifier.Notify(notify.Change{Path: path, Type: notify.ChangeSet, Source: "store"})
}

// AddGroup appends a new enabled keyword group and returns its ID.
func (s *Store) AddGroup(name, color string) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.cfg.Groups = append(s.cfg.Groups, KeywordGroup{
		ID:      id,
		Name:    name,
		Color:   color,
		Enabled: true,
	})
	s.mu.Unlock()
	s.notifier.Notify(notify.Change{Path: "groups", Type: notify.ChangeSet, Source: "store"})
	return id
}

// RemoveGroup deletes the group with the given ID.
func (s *Store) RemoveGroup(id string) error {
	err := s.editGroup(id, nil)
	return err
}

// RenameGroup changes a group's user-visible name.
func (s *Store) RenameGroup(id, name string) error {
	return s.editGroup(id, func(g *KeywordGroup) { g.Name = name })
}

// SetGroupColor changes a group's highlight color.
func (s *Store) SetGroupColor(id, color string) error {
	return s.editGroup(id, func(g *KeywordGroup) { g.Color = color })
}

// SetGroupEnabled toggles one group.
func (s *Store) SetGroupEnabled(id string, on bool) error {
	return s.editGroup(id, func(g *KeywordGroup) { g.Enabled = on })
}

// SetGroupCaseSensitive toggles one group's case sensitivity.
func (s *Store) SetGroupCaseSensitive(id string, on bool) error {
	return s.editGroup(id, func(g *KeywordGroup) { g.CaseSensitive = on })
}

// AddWord appends a word to a group's list.
func (s *Store) AddWord(id, word string) error {
	return s.editGroup(id, func(g *KeywordGroup) {
		g.Words = append(g.Words, word)
	})
}

// RemoveWord removes the first occurrence of word from a group's list.
func (s *Store) RemoveWord(id, word string) error {
	found := false
	err := s.editGroup(id, func(g *KeywordGroup) {
		for i, w := range g.Words {
			if w == word {
				g.Words = append(g.Words[:i], g.Words[i+1:]...)
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrWordNotFound
	}
	return nil
}

// SetWords replaces a group's word list wholesale (used by list import).
func (s *Store) SetWords(id string, words []string) error {
	return s.editGroup(id, func(g *KeywordGroup) {
		g.Words = append([]string(nil), words...)
	})
}

// editGroup applies fn to the group with the given ID, or removes the
// group when fn is nil. Notifies on success.
func (s *Store) editGroup(id string, fn func(*KeywordGroup)) error {
	s.mu.Lock()
	idx := s.cfg.GroupByID(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrGroupNotFound
	}
	if fn == nil {
		s.cfg.Groups = append(s.cfg.Groups[:idx], s.cfg.Groups[idx+1:]...)
	} else {
		fn(&s.cfg.Groups[idx])
	}
	s.mu.Unlock()
	s.notifier.Notify(notify.Change{Path: "groups", Type: notify.ChangeSet, Source: "store"})
	return nil
}
