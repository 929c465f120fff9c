package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"climb/internal/diag"
	"climb/internal/source"
)

const configFileName = "climb.toml"

type fileConfig struct {
	Eval   evalConfig   `toml:"eval"`
	Parse  parseConfig  `toml:"parse"`
	Output outputConfig `toml:"output"`
	Batch  batchConfig  `toml:"batch"`
	Source sourceConfig `toml:"source"`
}

type evalConfig struct {
	Overflow string `toml:"overflow"`
}

type parseConfig struct {
	Strict   bool `toml:"strict"`
	MaxDepth int  `toml:"max_depth"`
}

type outputConfig struct {
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type batchConfig struct {
	Jobs  int    `toml:"jobs"`
	Ext   string `toml:"ext"`
	Cache bool   `toml:"cache"`
}

type sourceConfig struct {
	Normalize string `toml:"normalize"`
}

// flagSetting is one config value destined for a command-line flag.
type flagSetting struct {
	key   []string
	flag  string
	value string
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// readConfig decodes path and returns the settings it defines. Unknown
// keys and invalid values are errors.
func readConfig(path string) ([]flagSetting, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, configError(path, "failed to parse TOML: %v", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, configError(path, "unknown key(s): %s", strings.Join(keys, ", "))
	}

	all := []flagSetting{
		{[]string{"eval", "overflow"}, "overflow", cfg.Eval.Overflow},
		{[]string{"parse", "strict"}, "strict", strconv.FormatBool(cfg.Parse.Strict)},
		{[]string{"parse", "max_depth"}, "max-depth", strconv.Itoa(cfg.Parse.MaxDepth)},
		{[]string{"output", "color"}, "color", cfg.Output.Color},
		{[]string{"output", "max_diagnostics"}, "max-diagnostics", strconv.Itoa(cfg.Output.MaxDiagnostics)},
		{[]string{"batch", "jobs"}, "jobs", strconv.Itoa(cfg.Batch.Jobs)},
		{[]string{"batch", "ext"}, "ext", cfg.Batch.Ext},
		{[]string{"batch", "cache"}, "cache", strconv.FormatBool(cfg.Batch.Cache)},
		{[]string{"source", "normalize"}, "normalize", cfg.Source.Normalize},
	}
	var out []flagSetting
	for _, s := range all {
		if meta.IsDefined(s.key...) {
			out = append(out, s)
		}
	}
	if _, ok := source.ParseNormalization(cfg.Source.Normalize); !ok {
		return nil, configError(path, "invalid source.normalize %q (expected none|nfc|nfkc)", cfg.Source.Normalize)
	}
	return out, nil
}

func configError(path, format string, args ...any) error {
	return diag.Errorf(diag.IOConfigError, source.Span{}, "%s: %s", path, fmt.Sprintf(format, args...))
}

// loadConfig applies climb.toml to every flag of cmd the user did not set.
func (a *app) loadConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		var ok bool
		path, ok, err = findConfig(".")
		if err != nil || !ok {
			return err
		}
	}
	settings, err := readConfig(path)
	if err != nil {
		return err
	}
	for _, s := range settings {
		f := cmd.Flags().Lookup(s.flag)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(s.value); err != nil {
			return configError(path, "invalid %s: %v", strings.Join(s.key, "."), err)
		}
	}
	return nil
}
