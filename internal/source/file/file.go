// Package file reads a snapshot payload from a local JSON file.
package file

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/source"
)

// Source implements source.Source for a JSON file in the endpoint's format.
type Source struct {
	path string
	log  *zap.Logger
}

// New returns a file source reading path.
func New(path string, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{path: path, log: log.Named("file")}
}

// Type returns source.SourceTypeFile.
func (s *Source) Type() source.SourceType { return source.SourceTypeFile }

// Describe returns the file path.
func (s *Source) Describe() string { return s.path }

// FetchSnapshot reads and decodes the file. The file's modification time
// is used as the snapshot time.
func (s *Source) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.fail(err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, s.fail(err)
	}

	payload, err := source.DecodePayload(data)
	if err != nil {
		return nil, s.fail(err)
	}

	snap, skipped := payload.ToSnapshot()
	snap.FetchedAt = time.Now()
	if info, err := os.Stat(s.path); err == nil {
		snap.FetchedAt = info.ModTime()
	}

	if skipped > 0 {
		s.log.Warn("skipped records without id",
			zap.String("path", s.path),
			zap.Int("skipped", skipped),
		)
	}

	return snap, nil
}

func (s *Source) fail(err error) error {
	return &source.FetchError{
		SourceType: source.SourceTypeFile,
		Location:   s.path,
		Err:        fmt.Errorf("reading %s: %w", s.path, err),
	}
}
