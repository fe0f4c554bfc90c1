// Package config loads and saves the pictriage configuration document.
// The on-disk format is a JSON object with two user-facing keys, "keybinds"
// and "categories", plus an optional "settings" block. The reserved "deleted"
// category is injected into the live map and never persisted.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pictriage/internal/errors"
)

// Action names for the fixed keybind set.
const (
	ActionNext       = "next"
	ActionPrevious   = "previous"
	ActionQuit       = "quit"
	ActionRotateCW   = "rotate_cw"
	ActionRotateCCW  = "rotate_ccw"
	ActionCustomName = "custom_name"
)

// DeletedCategory is the reserved category. It is always present in the live
// category map and is additionally reachable via the hardware delete and
// backspace keys regardless of configured binds.
const DeletedCategory = "deleted"

// DefaultPath is where the document lives relative to the working directory.
const DefaultPath = "config.json"

// Actions lists the configurable actions in display order.
var Actions = []string{
	ActionNext,
	ActionPrevious,
	ActionQuit,
	ActionRotateCW,
	ActionRotateCCW,
	ActionCustomName,
}

// Settings holds intake options that ride along in the same document.
type Settings struct {
	InDir        string   `json:"in_dir,omitempty"`
	OutDir       string   `json:"out_dir,omitempty"`
	Ignore       []string `json:"ignore,omitempty"`
	PreviewWidth int      `json:"preview_width,omitempty"`
}

// Config represents the application configuration structure.
type Config struct {
	Keybinds   map[string]string `json:"keybinds"`
	Categories map[string]string `json:"categories"`
	Settings   Settings          `json:"settings,omitempty"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Keybinds: map[string]string{
			ActionNext:       "n",
			ActionPrevious:   "p",
			ActionQuit:       "q",
			ActionRotateCW:   "r",
			ActionRotateCCW:  "e",
			ActionCustomName: "enter",
		},
		Categories: map[string]string{
			DeletedCategory: "delete",
		},
		Settings: Settings{
			InDir:        "in",
			OutDir:       "out",
			PreviewWidth: 72,
		},
	}
}

// Load reads the document at path, merging it on top of the defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	for action, key := range loaded.Keybinds {
		cfg.Keybinds[action] = key
	}
	// The reserved category keeps its hardcoded key even if a stale document
	// tries to override it.
	for category, key := range loaded.Categories {
		if category != DeletedCategory {
			cfg.Categories[category] = key
		}
	}

	if loaded.Settings.InDir != "" {
		cfg.Settings.InDir = loaded.Settings.InDir
	}
	if loaded.Settings.OutDir != "" {
		cfg.Settings.OutDir = loaded.Settings.OutDir
	}
	if len(loaded.Settings.Ignore) > 0 {
		cfg.Settings.Ignore = loaded.Settings.Ignore
	}
	if loaded.Settings.PreviewWidth > 0 {
		cfg.Settings.PreviewWidth = loaded.Settings.PreviewWidth
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the document to path, creating parent directories as needed.
// The reserved "deleted" category is stripped before writing.
func (c *Config) Save(path string) error {
	out := Config{
		Keybinds:   c.Keybinds,
		Categories: make(map[string]string, len(c.Categories)),
		Settings:   c.Settings,
	}
	for category, key := range c.Categories {
		if category != DeletedCategory {
			out.Categories[category] = key
		}
	}

	data, err := json.MarshalIndent(&out, "", "    ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "failed to create config directory")
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// Validate checks the configuration for empty names, empty keys, and
// conflicting single-key binds. Key matching is case-sensitive.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	seen := make(map[string]string)
	for _, action := range Actions {
		key, ok := c.Keybinds[action]
		if !ok || key == "" {
			return errors.NewConfigError("keybind missing for action", action, errors.InvalidConfig, nil)
		}
		if prev, dup := seen[key]; dup {
			return errors.NewConfigError(
				fmt.Sprintf("key %q bound to both %q and %q", key, prev, action),
				action, errors.InvalidConfig, nil)
		}
		seen[key] = action
	}

	for category, key := range c.Categories {
		if category == "" {
			return errors.NewConfigError("category name is empty", "", errors.InvalidConfig, nil)
		}
		if category == DeletedCategory {
			continue
		}
		if key == "" {
			return errors.NewConfigError("category has no key", category, errors.InvalidConfig, nil)
		}
		if prev, dup := seen[key]; dup {
			return errors.NewConfigError(
				fmt.Sprintf("key %q bound to both %q and %q", key, prev, category),
				category, errors.InvalidConfig, nil)
		}
		seen[key] = category
	}

	return nil
}
