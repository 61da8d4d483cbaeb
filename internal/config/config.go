// Package config loads geotext settings from YAML or TOML files.
package config

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	Lenient = "lenient"
	Strict  = "strict"
)

type Log struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// SRS is an extra spatial reference definition.
type SRS struct {
	SRID int    `yaml:"srid" toml:"srid"`
	Proj string `yaml:"proj" toml:"proj"`
}

type Config struct {
	Log          Log    `yaml:"log" toml:"log"`
	Reprojection string `yaml:"reprojection" toml:"reprojection"`
	SRS          []SRS  `yaml:"srs" toml:"srs"`
}

func Default() Config {
	return Config{
		Log:          Log{Level: "info"},
		Reprojection: Lenient,
	}
}

// StrictReprojection reports whether unresolved reprojections are errors.
func (c Config) StrictReprojection() bool { return c.Reprojection == Strict }

// Load reads path from fs. An empty path returns the defaults. Unset fields
// keep their default values.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, errors.Newf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "decoding config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	switch c.Reprojection {
	case "":
		c.Reprojection = Lenient
	case Lenient, Strict:
	default:
		return errors.Newf("unknown reprojection mode %q", c.Reprojection)
	}
	seen := make(map[int]bool, len(c.SRS))
	for _, s := range c.SRS {
		if s.SRID <= 0 {
			return errors.Newf("srs entry has invalid srid %d", s.SRID)
		}
		if strings.TrimSpace(s.Proj) == "" {
			return errors.Newf("srs %d: empty proj definition", s.SRID)
		}
		if seen[s.SRID] {
			return errors.Newf("srs %d defined twice", s.SRID)
		}
		seen[s.SRID] = true
	}
	return nil
}
