package app

import (
	"errors"

	intrnl "bytetube/internal"
)

// RunClient launches the Bubble Tea chat TUI with the provided configuration.
func RunClient(cfg ClientConfig) error {
	if cfg.ServerURL == "" {
		return errors.New("server URL is required")
	}
	if cfg.Room == "" {
		return errors.New("room is required")
	}
	return intrnl.RunClient(cfg.ServerURL, cfg.Room, cfg.Username)
}
