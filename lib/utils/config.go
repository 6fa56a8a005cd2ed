package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"micromachine.dev/blockbuild/lib/externals"
)

var configFileNames = []string{"blockbuild.toml", "blockbuild.json", "blockbuild.jsonc"}

type Config struct {
	EntryPoints    []string                      `toml:"entryPoints" json:"entryPoints"`
	Outdir         string                        `toml:"outdir" json:"outdir"`
	JSXFactory     string                        `toml:"jsxFactory" json:"jsxFactory"`
	JSXFragment    string                        `toml:"jsxFragment" json:"jsxFragment"`
	GlobalObject   string                        `toml:"globalObject" json:"globalObject"`
	ManifestFormat string                        `toml:"manifestFormat" json:"manifestFormat"`
	Externals      map[string]externals.External `toml:"externals" json:"externals"`
	Bundled        []string                      `toml:"bundled" json:"bundled"`

	// Path of the file the configuration was read from, empty for defaults.
	Path string `toml:"-" json:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		EntryPoints:    []string{"src/index.js", "src/style.css"},
		Outdir:         "build",
		JSXFactory:     "wp.element.createElement",
		JSXFragment:    "wp.element.Fragment",
		GlobalObject:   "window",
		ManifestFormat: "php",
	}
}

// DetectConfigFile loads blockbuild.{toml,json,jsonc} from root. Fields that
// are not set keep their defaults, and a project without a file builds with
// the defaults alone.
func DetectConfigFile(root *string) (*Config, error) {
	rootDir := ""
	if root != nil {
		rootDir = *root
	}

	config := DefaultConfig()

	for _, name := range configFileNames {
		path := filepath.Join(rootDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}

		switch filepath.Ext(path) {
		case ".json", ".jsonc":
			if err := json.Unmarshal(jsonc.ToJSON(data), config); err != nil {
				return nil, fmt.Errorf("invalid %s: %w", name, err)
			}
		case ".toml":
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("invalid %s: %w", name, err)
			}
		}

		config.Path = path
		return config, nil
	}

	return config, nil
}

// Mapping builds the externals table described by the configuration.
func (c *Config) Mapping() (*externals.Table, error) {
	return externals.NewTable(externals.WordPress(), c.Externals, c.Bundled)
}
