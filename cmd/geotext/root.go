package main

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geotext/internal/config"
	"geotext/internal/ingest"
	"geotext/internal/logging"
)

type app struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfgPath string
	cfg     config.Config
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "geotext",
		Short:         "Parse and view EWKT, GML and GeoJSON geometries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.fs, a.cfgPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (.yaml, .yml or .toml)")
	root.AddCommand(a.parseCmd(), a.viewCmd(), a.srsCmd())
	return root
}

// service builds the parsers with a logger writing to fallback unless the
// config names a file.
func (a *app) service(fallback string) (*ingest.Service, *zap.Logger, error) {
	log, err := logging.New(a.cfg.Log, fallback)
	if err != nil {
		return nil, nil, err
	}
	svc, err := ingest.New(a.cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return svc, log, nil
}
