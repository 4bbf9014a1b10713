package wacc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrMissingSource is returned when a required source is not provided or
// does not exist. It is reported before anything is parsed.
var ErrMissingSource = errors.New("missing source")

// FormatOf guesses the format of a file from its extension.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return XLSX
	}
	return CSV
}

// LoadSource reads all records of the file at path.
func LoadSource(path string) ([]Record, error) {
	return loadSource(context.Background(), path)
}

// LoadSources reads the cost-basis and the holdings files concurrently.
// Both files are checked for presence before any of them is parsed.
// The first failure cancels the other load and is returned. Ingestion
// defects are traced on the logger of ctx, see zerolog.Ctx.
func LoadSources(ctx context.Context, costBasisPath, holdingsPath string) (costBasis, holdings []Record, err error) {
	if err := errors.Join(checkSource("cost basis", costBasisPath), checkSource("holdings", holdingsPath)); err != nil {
		return nil, nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		costBasis, err = loadSource(ctx, costBasisPath)
		return err
	})
	g.Go(func() (err error) {
		holdings, err = loadSource(ctx, holdingsPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return costBasis, holdings, nil
}

// checkSource reports a missing source.
func checkSource(name, path string) error {
	if path == "" {
		return fmt.Errorf("%w: no %s file given", ErrMissingSource, name)
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s file %q does not exist", ErrMissingSource, name, path)
	}
	if err != nil {
		return fmt.Errorf("cannot access %s file %q: %w", name, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s file %q is a directory", ErrMissingSource, name, path)
	}
	return nil
}

// loadSource opens and decodes the file at path.
func loadSource(ctx context.Context, path string) ([]Record, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no file given", ErrMissingSource)
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q does not exist", ErrMissingSource, path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()

	r := &contextReader{ctx: ctx, r: f}
	log := zerolog.Ctx(ctx).With().Str("source", path).Logger()
	format := FormatOf(path)
	var records []Record
	switch format {
	case XLSX:
		records, err = decodeWorkbook(r)
	default:
		records, err = decodeCSV(r, &log)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, &IngestError{Source: path, Format: format, Err: err}
	}
	return records, nil
}

// contextReader stops reading once its context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
