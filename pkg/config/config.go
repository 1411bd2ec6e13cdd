// Package config resolves run settings from command-line flags, NODETOMD_*
// environment variables and an optional .nodetomd.yaml in the project root.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"nodetomd/pkg/bundle"
)

// FileName is the optional per-project config file.
const FileName = ".nodetomd.yaml"

// EnvPrefix prefixes environment overrides, e.g. NODETOMD_NO_STYLES=true.
const EnvPrefix = "NODETOMD"

// Keys shared by flags, environment variables and the config file.
const (
	KeyNoStyles       = "no-styles"
	KeyNoTypes        = "no-types"
	KeyExclude        = "exclude"
	KeyIncludeIgnored = "include-ignored"
	KeyTree           = "tree"
	KeyWorkers        = "workers"
	KeyDebug          = "debug"
	KeyQuiet          = "quiet"
)

// Settings is the resolved configuration for one run.
type Settings struct {
	NoStyles       bool
	NoTypes        bool
	Exclude        []string
	IncludeIgnored bool
	Tree           bool
	Workers        int
	Debug          bool
	Quiet          bool
	ConfigFile     string // Config file that was read, if any.
}

// RegisterFlags defines every setting on fs with its default.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(KeyNoStyles, false, "Exclude style files and <style> blocks")
	fs.Bool(KeyNoTypes, false, "Exclude type definitions and strip TypeScript types")
	fs.StringP(KeyExclude, "e", "", `Exclude files/directories using glob patterns (comma-separated, e.g. "test/**,*.spec.*")`)
	fs.BoolP(KeyIncludeIgnored, "i", false, "Include files that match .gitignore patterns")
	fs.Bool(KeyTree, false, "Prepend a project structure section to the document")
	fs.Int(KeyWorkers, 0, "Number of concurrent file readers (0 = one per CPU)")
	fs.Bool(KeyDebug, false, "Enable development logging at debug level")
	fs.BoolP(KeyQuiet, "q", false, "Only log warnings and errors")
}

// Load resolves settings for root. Precedence: explicitly set flag,
// environment variable, config file, flag default.
func Load(root string, fs *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("%w: bind flags: %w", bundle.ErrConfiguration, err)
	}

	s := &Settings{}
	configPath := filepath.Join(root, FileName)
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", bundle.ErrConfiguration, configPath, err)
		}
		s.ConfigFile = configPath
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: stat %s: %w", bundle.ErrFilesystemAccess, configPath, err)
	}

	s.NoStyles = v.GetBool(KeyNoStyles)
	s.NoTypes = v.GetBool(KeyNoTypes)
	s.Exclude = excludeList(v.Get(KeyExclude))
	s.IncludeIgnored = v.GetBool(KeyIncludeIgnored)
	s.Tree = v.GetBool(KeyTree)
	s.Workers = v.GetInt(KeyWorkers)
	s.Debug = v.GetBool(KeyDebug)
	s.Quiet = v.GetBool(KeyQuiet)

	if s.Workers < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", bundle.ErrConfiguration, KeyWorkers)
	}
	return s, nil
}

// excludeList accepts either the comma-separated flag form or a YAML list.
func excludeList(raw any) []string {
	switch val := raw.(type) {
	case nil:
		return nil
	case string:
		return bundle.ParseGlobList(val)
	case []any:
		var out []string
		for _, item := range val {
			out = append(out, bundle.ParseGlobList(fmt.Sprint(item))...)
		}
		return out
	case []string:
		return bundle.ParseGlobList(strings.Join(val, ","))
	default:
		return bundle.ParseGlobList(fmt.Sprint(val))
	}
}

// Arguments converts the settings into bundle arguments for root.
func (s *Settings) Arguments(root string, progress bool) *bundle.Arguments {
	return &bundle.Arguments{
		Root: root,
		Filter: bundle.FilterConfig{
			ExcludeStyles:  s.NoStyles,
			ExcludeTypes:   s.NoTypes,
			ExcludeGlobs:   s.Exclude,
			IncludeIgnored: s.IncludeIgnored,
		},
		MaxWorkers: s.Workers,
		Tree:       s.Tree,
		Progress:   progress,
	}
}
