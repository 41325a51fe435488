package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/helpdeck/helpdeck/log"
)

const StateFileName = "state.json"

// State is persistent application state, distinct from configuration: it
// records where the user left off, not how they want the app to behave.
type State struct {
	// LastConversationID restores the selection on next launch.
	LastConversationID string `json:"last_conversation_id"`
	// HelpScreenSeen suppresses the first-run help overlay.
	HelpScreenSeen bool `json:"help_screen_seen"`
}

// LoadState loads the persistent state, returning a zero state on any error.
func LoadState() *State {
	configDir, err := GetConfigDir()
	if err != nil {
		log.WarningLog.Printf("failed to get config dir: %v", err)
		return &State{}
	}

	data, err := os.ReadFile(filepath.Join(configDir, StateFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			log.WarningLog.Printf("failed to read state file: %v", err)
		}
		return &State{}
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		log.ErrorLog.Printf("failed to parse state file: %v", err)
		return &State{}
	}
	return &state
}

// SaveState writes the persistent state to disk.
func SaveState(state *State) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return os.WriteFile(filepath.Join(configDir, StateFileName), data, 0644)
}
