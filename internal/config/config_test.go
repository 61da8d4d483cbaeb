package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	write := func(name, body string) {
		require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
	}
	write("/etc/geotext.yaml", `
log:
  level: debug
reprojection: strict
srs:
  - srid: 2154
    proj: "+proj=lcc +lat_1=49 +lat_2=44 +ellps=GRS80 +units=m"
`)
	write("/etc/geotext.toml", `
reprojection = "lenient"

[log]
file = "/tmp/geotext.log"

[[srs]]
srid = 27700
proj = "+proj=tmerc +lat_0=49 +lon_0=-2 +ellps=airy +units=m"
`)
	write("/etc/bad-mode.yml", "reprojection: sometimes\n")
	write("/etc/dup.yml", "srs:\n  - {srid: 1, proj: a}\n  - {srid: 1, proj: b}\n")
	write("/etc/noproj.yml", "srs:\n  - {srid: 1}\n")
	write("/etc/geotext.ini", "level=debug\n")
	write("/etc/broken.yaml", "log: [\n")

	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load(fs, "")
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
		require.False(t, cfg.StrictReprojection())
	})

	t.Run("yaml", func(t *testing.T) {
		cfg, err := Load(fs, "/etc/geotext.yaml")
		require.NoError(t, err)
		require.Equal(t, "debug", cfg.Log.Level)
		require.True(t, cfg.StrictReprojection())
		require.Equal(t, []SRS{{SRID: 2154, Proj: "+proj=lcc +lat_1=49 +lat_2=44 +ellps=GRS80 +units=m"}}, cfg.SRS)
	})

	t.Run("toml", func(t *testing.T) {
		cfg, err := Load(fs, "/etc/geotext.toml")
		require.NoError(t, err)
		require.Equal(t, "info", cfg.Log.Level)
		require.Equal(t, "/tmp/geotext.log", cfg.Log.File)
		require.False(t, cfg.StrictReprojection())
		require.Len(t, cfg.SRS, 1)
		require.Equal(t, 27700, cfg.SRS[0].SRID)
	})

	for _, path := range []string{
		"/etc/missing.yaml",
		"/etc/bad-mode.yml",
		"/etc/dup.yml",
		"/etc/noproj.yml",
		"/etc/geotext.ini",
		"/etc/broken.yaml",
	} {
		t.Run(path, func(t *testing.T) {
			_, err := Load(fs, path)
			require.Error(t, err)
		})
	}
}
