package commands

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/hay-kot/slate/internal/core/config"
	"github.com/hay-kot/slate/internal/whiteboard"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// NewSession creates a whiteboard session from cfg, or from the loaded
// config when cfg is nil.
func (f *Flags) NewSession(cfg *config.Config) (*whiteboard.Service, error) {
	if cfg == nil {
		cfg = f.Config
	}
	logger := log.With().Str("component", "whiteboard").Logger()
	return whiteboard.New(cfg, logger)
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "slate", "config.yaml")
}
