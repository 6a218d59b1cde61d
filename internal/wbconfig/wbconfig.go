// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package wbconfig implements the configuration surface of spec §6
// (terminal.shell_path, layout.*_percent, pty.copy_lines_count,
// pty.scrollback_capacity, assistant.startup_prefixes), grounded on
// sa6mwa-centaurx/internal/appconfig/load.go's viper.New + SetDefault +
// ReadInConfig + Unmarshal shape, plus fsnotify-driven hot-reload the
// way bnema-dumber watches its own config file.
package wbconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// StartupPrefix is one entry of assistant.startup_prefixes.
type StartupPrefix struct {
	Name        string `mapstructure:"name"`
	Prefix      string `mapstructure:"prefix"`
	Description string `mapstructure:"description"`
}

// Config is the fully resolved, validated configuration. Unknown keys
// are ignored, per spec §6.
type Config struct {
	Terminal struct {
		ShellPath string   `mapstructure:"shell_path"`
		ShellArgs []string `mapstructure:"shell_args"`
	} `mapstructure:"terminal"`

	Layout struct {
		FileBrowserWidthPercent int `mapstructure:"file_browser_width_percent"`
		PreviewWidthPercent     int `mapstructure:"preview_width_percent"`
		RightPanelWidthPercent  int `mapstructure:"right_panel_width_percent"`
		AssistantHeightPercent  int `mapstructure:"assistant_height_percent"`
	} `mapstructure:"layout"`

	Pty struct {
		CopyLinesCount    int `mapstructure:"copy_lines_count"`
		ScrollbackCapacity int `mapstructure:"scrollback_capacity"`
	} `mapstructure:"pty"`

	Assistant struct {
		StartupPrefixes []StartupPrefix `mapstructure:"startup_prefixes"`
	} `mapstructure:"assistant"`
}

// Default returns the configuration with every default spec §6 names.
func Default() Config {
	var c Config
	c.Terminal.ShellPath = "/bin/sh"
	c.Terminal.ShellArgs = nil
	c.Layout.FileBrowserWidthPercent = 20
	c.Layout.PreviewWidthPercent = 30
	c.Layout.RightPanelWidthPercent = 50
	c.Layout.AssistantHeightPercent = 60
	c.Pty.CopyLinesCount = 50
	c.Pty.ScrollbackCapacity = 1000
	return c
}

// Loader owns a viper instance and the current resolved Config, and
// supports hot-reload via fsnotify.
type Loader struct {
	v  *viper.Viper
	mu sync.RWMutex
	cfg Config

	onChange func(Config)
}

// Load reads path (if it exists; a missing file just yields defaults),
// validates it, and returns a Loader ready for hot-reload via Watch.
func Load(path string) (*Loader, error) {
	def := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("terminal.shell_path", def.Terminal.ShellPath)
	v.SetDefault("terminal.shell_args", def.Terminal.ShellArgs)
	v.SetDefault("layout.file_browser_width_percent", def.Layout.FileBrowserWidthPercent)
	v.SetDefault("layout.preview_width_percent", def.Layout.PreviewWidthPercent)
	v.SetDefault("layout.right_panel_width_percent", def.Layout.RightPanelWidthPercent)
	v.SetDefault("layout.assistant_height_percent", def.Layout.AssistantHeightPercent)
	v.SetDefault("pty.copy_lines_count", def.Pty.CopyLinesCount)
	v.SetDefault("pty.scrollback_capacity", def.Pty.ScrollbackCapacity)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("wbconfig: read %q: %w", path, err)
		}
	}

	l := &Loader{v: v}
	if err := l.reload(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Loader) reload() error {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("wbconfig: unmarshal: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return err
	}
	l.mu.Lock()
	l.cfg = cfg
	l.mu.Unlock()
	return nil
}

func validate(cfg *Config) error {
	clamp := func(p int) int {
		if p < 10 {
			return 10
		}
		if p > 90 {
			return 90
		}
		return p
	}
	cfg.Layout.FileBrowserWidthPercent = clamp(cfg.Layout.FileBrowserWidthPercent)
	cfg.Layout.PreviewWidthPercent = clamp(cfg.Layout.PreviewWidthPercent)
	cfg.Layout.RightPanelWidthPercent = clamp(cfg.Layout.RightPanelWidthPercent)
	cfg.Layout.AssistantHeightPercent = clamp(cfg.Layout.AssistantHeightPercent)
	if cfg.Pty.ScrollbackCapacity < 0 {
		return fmt.Errorf("wbconfig: pty.scrollback_capacity must be >= 0")
	}
	if cfg.Pty.CopyLinesCount < 0 {
		return fmt.Errorf("wbconfig: pty.copy_lines_count must be >= 0")
	}
	return nil
}

// Current returns the most recently loaded configuration.
func (l *Loader) Current() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

// OnChange registers a callback invoked after a successful hot-reload.
func (l *Loader) OnChange(fn func(Config)) { l.onChange = fn }

// Watch starts an fsnotify watch on the config file and reloads on
// write events, logging (rather than failing) a reload that produces
// an invalid config so a typo in the file never crashes a running
// workbench.
func (l *Loader) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("wbconfig: watch: %w", err)
	}
	if err := w.Add(l.v.ConfigFileUsed()); err != nil {
		w.Close()
		return fmt.Errorf("wbconfig: watch %q: %w", l.v.ConfigFileUsed(), err)
	}
	go func() {
		for ev := range w.Events {
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := l.v.ReadInConfig(); err != nil {
				log.Warn("config reload failed", "err", err)
				continue
			}
			if err := l.reload(); err != nil {
				log.Warn("config reload rejected", "err", err)
				continue
			}
			if l.onChange != nil {
				l.onChange(l.Current())
			}
		}
	}()
	return nil
}
