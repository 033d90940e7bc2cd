// Copyright (c) 2025 The Neptune developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads and persists the Neptune data-directory configuration
// file: a flat key=value format with comment and blank-line tolerance.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the user-facing settings of a Neptune deployment.
type Config struct {
	// DataDir is the root directory for persistent state: the emission
	// database, key files and the config file itself.
	DataDir string

	// Network selects the Neptune network: mainnet, testnet or devnet.
	Network string

	// LogLevel is the minimum level emitted: debug, info, warn or error.
	LogLevel string

	// LogFile is the log destination. Empty means stderr.
	LogFile string

	// RPCURL is the Neptune node endpoint. Empty selects the network preset.
	RPCURL string

	// RPCUser and RPCPass are the node's basic-auth credentials.
	RPCUser string
	RPCPass string
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		DataDir:  DefaultDataDir(),
		Network:  "mainnet",
		LogLevel: "info",
	}
}

// DefaultDataDir returns the platform default data directory, ~/.neptune.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to a relative directory when the home cannot be
		// determined.
		return ".neptune"
	}
	return filepath.Join(home, ".neptune")
}

// ConfigPath returns the path of the config file inside a data directory.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// LoadConfig reads a config file. Missing keys keep their defaults; unknown
// keys are ignored so newer files load under older binaries.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		applyKey(&cfg, key, value)
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return cfg, nil
}

// parseKeyValue splits a config line on its first '='.
func parseKeyValue(line string) (key, value string, err error) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", ErrInvalidConfigLine
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", ErrInvalidConfigLine
	}
	return key, value, nil
}

// applyKey sets a single config field. Unknown keys are ignored.
func applyKey(cfg *Config, key, value string) {
	switch strings.ToLower(key) {
	case "datadir":
		cfg.DataDir = value
	case "network":
		cfg.Network = value
	case "loglevel":
		cfg.LogLevel = value
	case "logfile":
		cfg.LogFile = value
	case "rpcurl":
		cfg.RPCURL = value
	case "rpcuser":
		cfg.RPCUser = value
	case "rpcpass":
		cfg.RPCPass = value
	}
}

// SaveConfig writes the config file, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Neptune Configuration\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)
	fmt.Fprintf(&b, "rpcurl = %s\n", cfg.RPCURL)
	fmt.Fprintf(&b, "rpcuser = %s\n", cfg.RPCUser)
	fmt.Fprintf(&b, "rpcpass = %s\n", cfg.RPCPass)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
