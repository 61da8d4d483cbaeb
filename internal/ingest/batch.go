package ingest

import (
	"context"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"geotext/internal/geom"
)

// Result is the outcome of parsing one file.
type Result struct {
	Path string
	Geom *geom.Geometry
	Err  error
}

// ParseFiles parses paths with at most jobs files in flight. Results come
// back in the order of paths; a failing file does not stop the others.
// The returned error is only set when ctx is cancelled.
func (s *Service) ParseFiles(ctx context.Context, fs afero.Fs, lang string, paths []string, jobs int) ([]Result, error) {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			geo, err := s.ParseFile(fs, lang, path)
			results[i] = Result{Path: path, Geom: geo, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
