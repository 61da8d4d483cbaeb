package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"geotext/internal/geom"
	"geotext/internal/geomconv"
	"geotext/internal/ingest"
)

type parseOptions struct {
	lang   string
	format string
	jobs   int
}

func (o *parseOptions) bind(f *pflag.FlagSet) {
	f.StringVar(&o.lang, "lang", ingest.LangAuto, "input language: "+strings.Join(ingest.Langs, "|"))
	f.StringVar(&o.format, "format", geomconv.FormatText, "output format: "+strings.Join(geomconv.Formats, "|"))
	f.IntVarP(&o.jobs, "jobs", "j", runtime.NumCPU(), "files parsed in parallel")
}

func (o *parseOptions) validate() error {
	if !slices.Contains(ingest.Langs, o.lang) {
		return errors.Newf("unknown --lang %q (want one of %s)", o.lang, strings.Join(ingest.Langs, ", "))
	}
	if !slices.Contains(geomconv.Formats, o.format) {
		return errors.Newf("unknown --format %q (want one of %s)", o.format, strings.Join(geomconv.Formats, ", "))
	}
	return nil
}

func (a *app) parseCmd() *cobra.Command {
	var opts parseOptions
	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse geometry text and print it in a normalized form",
		Long: "Parse geometry text from files, or from stdin when no file is given, " +
			"and print each geometry in the requested format.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			svc, log, err := a.service("")
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "reading stdin")
				}
				g, err := svc.Parse(opts.lang, string(data))
				if err != nil {
					return errors.Wrapf(err, "stdin [%s]", geom.Class(err))
				}
				return a.emit(cmd.OutOrStdout(), "", g, opts.format)
			}

			results, err := svc.ParseFiles(cmd.Context(), a.fs, opts.lang, args, opts.jobs)
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					log.Debug("parse failed", zap.String("path", r.Path), zap.Error(r.Err))
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s error: %v\n", r.Path, geom.Class(r.Err), r.Err)
					continue
				}
				prefix := ""
				if len(results) > 1 {
					prefix = r.Path + "\t"
				}
				if err := a.emit(cmd.OutOrStdout(), prefix, r.Geom, opts.format); err != nil {
					return err
				}
			}
			if failed > 0 {
				return errors.Newf("%d of %d inputs failed", failed, len(results))
			}
			return nil
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

func (a *app) emit(w io.Writer, prefix string, g *geom.Geometry, format string) error {
	out, err := geomconv.Encode(g, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, prefix+out)
	return err
}
