package app

import (
	"os"
	"path/filepath"
	"runtime"
)

// ServerConfig defines how the HTTP/WebSocket backend should run.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// ContentDir is the local video root. Ignored when OriginURL is set.
	ContentDir string
	// OriginURL is a remote origin template with one %s for the video id,
	// e.g. "https://cdn.example.com/videos/%s.mp4".
	OriginURL string
	// DBPath locates the catalog database.
	DBPath string
}

// ClientConfig defines the parameters the chat TUI needs.
type ClientConfig struct {
	ServerURL string
	Username  string
	Room      string
}

// DefaultDBPath returns a per-user data path for the bundled SQLite file.
func DefaultDBPath() string {
	if env := os.Getenv("BYTETUBE_DB_PATH"); env != "" {
		return env
	}
	if env := os.Getenv("BYTETUBE_DATA_DIR"); env != "" {
		return filepath.Join(env, "bytetube.db")
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "bytetube", "bytetube.db")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Bytetube", "bytetube.db")
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "Bytetube", "bytetube.db")
		}
		return filepath.Join(home, ".local", "share", "bytetube", "bytetube.db")
	}
	return filepath.Join(".", ".bytetube", "bytetube.db")
}

// DefaultContentDir returns the local video root.
func DefaultContentDir() string {
	if env := os.Getenv("BYTETUBE_CONTENT_DIR"); env != "" {
		return env
	}
	return "videos"
}
