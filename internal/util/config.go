package util

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const ConfigFileName = "chai.toml"

type Configuration struct {
	Version    string
	BuildDate  string
	Commit     string
	RootPath   string
	ChaiHome   string
	DebugAST   bool
	LogLevel   string
	LogFile    string
	HistoryDSN string
	Prompt     string
}

// fileConfig is the subset of Configuration that may be set from chai.toml.
type fileConfig struct {
	DebugAST   *bool   `toml:"debug_ast"`
	LogLevel   *string `toml:"log_level"`
	LogFile    *string `toml:"log_file"`
	HistoryDSN *string `toml:"history_dsn"`
	Prompt     *string `toml:"prompt"`
}

// DefaultConfigPath returns $CHAI_HOME/chai.toml, or "" when CHAI_HOME is unset.
func DefaultConfigPath(chaiHome string) string {
	if chaiHome == "" {
		return ""
	}
	return filepath.Join(chaiHome, ConfigFileName)
}

// ConfigFile describes the outcome of LoadConfigFile. Unknown lists keys of
// the file that no setting uses.
type ConfigFile struct {
	Path    string
	Loaded  bool
	Unknown []string
}

// LoadConfigFile overlays the values found in the TOML file at path onto cfg.
// Keys named in explicit are left untouched so command line flags win.
// A missing file is not an error when optional is set. Nothing is logged
// here: the caller reports the result once its logger is configured.
func LoadConfigFile(cfg *Configuration, path string, optional bool, explicit map[string]bool) (ConfigFile, error) {
	result := ConfigFile{Path: path}

	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return result, nil
		}
		return result, fmt.Errorf("failed to load config '%s': %w", path, err)
	}
	result.Loaded = true

	for _, key := range md.Undecoded() {
		result.Unknown = append(result.Unknown, key.String())
	}

	if fc.DebugAST != nil && !explicit["debug-ast"] {
		cfg.DebugAST = *fc.DebugAST
	}
	if fc.LogLevel != nil && !explicit["log-level"] {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFile != nil && !explicit["log-file"] {
		cfg.LogFile = *fc.LogFile
	}
	if fc.HistoryDSN != nil && !explicit["history-db"] {
		cfg.HistoryDSN = *fc.HistoryDSN
	}
	if fc.Prompt != nil && !explicit["prompt"] {
		cfg.Prompt = *fc.Prompt
	}
	return result, nil
}

// Log reports the loaded file through the default logger.
func (c ConfigFile) Log() {
	if !c.Loaded {
		return
	}
	if len(c.Unknown) > 0 {
		slog.Warn("unknown keys in config file",
			slog.String("path", c.Path),
			slog.Any("keys", c.Unknown))
	}
	slog.Debug("loaded config file", slog.String("path", c.Path))
}
