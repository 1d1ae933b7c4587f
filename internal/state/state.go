package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// FileState records the last migration of a single input file
type FileState struct {
	Hash       string    `json:"hash"`
	Output     string    `json:"output"`
	Cards      int       `json:"cards"`
	RunID      string    `json:"run_id"`
	MigratedAt time.Time `json:"migrated_at"`
}

// State represents the batch migration state, keyed by input path
type State struct {
	Files     map[string]*FileState `json:"files"`
	LastRunID string                `json:"last_run_id,omitempty"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Files: make(map[string]*FileState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if state.Files == nil {
		state.Files = make(map[string]*FileState)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HasChanged reports whether input needs migrating to output, with the reason
func (s *State) HasChanged(input, output string) (bool, string, error) {
	fileState, exists := s.Files[input]
	if !exists {
		return true, "new file", nil
	}

	if fileState.Output != output {
		return true, "output path changed", nil
	}

	if _, err := os.Stat(output); err != nil {
		if os.IsNotExist(err) {
			return true, "output missing", nil
		}
		return false, "", err
	}

	hash, err := ComputeHash(input)
	if err != nil {
		return false, "", err
	}
	if hash != fileState.Hash {
		return true, "content changed", nil
	}

	return false, "unchanged", nil
}

// Update records a completed migration of input
func (s *State) Update(input, output string, cards int, runID string) error {
	hash, err := ComputeHash(input)
	if err != nil {
		return err
	}

	s.Files[input] = &FileState{
		Hash:       hash,
		Output:     output,
		Cards:      cards,
		RunID:      runID,
		MigratedAt: time.Now(),
	}

	return nil
}
