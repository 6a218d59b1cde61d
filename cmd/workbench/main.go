// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Command workbench is the entrypoint, grounded on the pack's cobra
// root-command shape (hylarucoder-codectl's internal/cli/root.go): a
// single default action wired through RunE, with explicit exit codes
// rather than letting a panic decide.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/eqms/claude-workbench/internal/history"
	"github.com/eqms/claude-workbench/internal/wbconfig"
	"github.com/eqms/claude-workbench/internal/workbench"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "workbench",
	Short: "workbench - a terminal-based development workspace multiplexer",
	Long:  "workbench composes a file browser, a preview pane, and PTY-backed assistant/git/shell panes into one terminal session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(configPath)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	home, _ := os.UserHomeDir()
	def := filepath.Join(home, ".config", "workbench", "config.yaml")
	rootCmd.Flags().StringVar(&configPath, "config", def, "path to config.yaml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	loader, err := wbconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := loader.Watch(); err != nil {
		log.Warn("config hot-reload disabled", "err", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, ".local", "share", "workbench", "history.db")
	os.MkdirAll(filepath.Dir(histPath), 0o755)
	histStore, err := history.Open(histPath)
	if err != nil {
		log.Warn("command history disabled", "err", err)
		histStore = nil
	} else {
		defer histStore.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return &workbench.InitError{Cause: err}
	}
	driver := workbench.NewTcellScreenDriver(screen)

	wb, err := workbench.New(driver, loader, cwd, histStore)
	if err != nil {
		return err
	}

	return wb.Run(context.Background())
}
