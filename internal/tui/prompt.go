package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Input prompts for a single line, pre-filled with a default the user
// can accept or edit. An emptied field falls back to the default.
func Input(title, defaultValue string) (string, error) {
	result := defaultValue
	err := huh.NewInput().
		Title(title).
		Value(&result).
		Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	if result == "" {
		return defaultValue, nil
	}
	return result, nil
}
