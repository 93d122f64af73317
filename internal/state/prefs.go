// Package state persists UI preferences that carry across sessions: the
// last selected DAO, the followed set, and layout choices.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/daoterm/daoterm/internal/logger"
)

const prefsFile = "prefs.json"

// Prefs holds persistent UI preferences.
type Prefs struct {
	// LastDAO is preselected on the next start.
	LastDAO string `json:"lastDao"`
	// Followed is the set of DAO ids shown by the "followed only" filter.
	Followed []string `json:"followed"`
	// SidebarVisible toggles the DAO sidebar in the dashboard.
	SidebarVisible bool `json:"sidebarVisible"`
}

// DefaultPrefs returns the defaults used when no file exists.
func DefaultPrefs() *Prefs {
	return &Prefs{
		SidebarVisible: true,
	}
}

// IsFollowed reports whether a DAO is in the followed set.
func (p *Prefs) IsFollowed(daoID string) bool {
	return slices.Contains(p.Followed, daoID)
}

// ToggleFollow adds or removes a DAO from the followed set and reports the
// new state.
func (p *Prefs) ToggleFollow(daoID string) bool {
	if i := slices.Index(p.Followed, daoID); i >= 0 {
		p.Followed = slices.Delete(p.Followed, i, i+1)
		return false
	}
	p.Followed = append(p.Followed, daoID)
	return true
}

// Load reads preferences from <dataDir>/prefs.json.
// Returns defaults if the file doesn't exist or on error.
func Load(dataDir string) *Prefs {
	path := filepath.Join(dataDir, prefsFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultPrefs()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read prefs file: %v", err)
		return DefaultPrefs()
	}

	var prefs Prefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		logger.Warn("Failed to parse prefs JSON: %v", err)
		return DefaultPrefs()
	}

	return &prefs
}

// Save writes preferences to <dataDir>/prefs.json.
// Creates the data directory if it doesn't exist.
func Save(dataDir string, prefs *Prefs) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, prefsFile)

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling prefs: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing prefs file: %w", err)
	}

	logger.Debug("prefs saved to %s", path)
	return nil
}
