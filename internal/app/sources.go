package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/ticketboard/internal/credential"
	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/source"
	"github.com/nhle/ticketboard/internal/source/api"
	"github.com/nhle/ticketboard/internal/source/file"
	"github.com/nhle/ticketboard/internal/store"
)

// lookupToken reads the optional endpoint token; swapped out in tests.
var lookupToken = credential.Lookup

// OpenSource builds the source selected by cfg.Type. The returned close
// function releases whatever the source holds open and is never nil.
func OpenSource(cfg model.SourceConfig, log *zap.Logger) (source.Source, func() error, error) {
	if log == nil {
		log = zap.NewNop()
	}
	noop := func() error { return nil }

	switch source.SourceType(cfg.Type) {
	case source.SourceTypeAPI, "":
		url := cfg.URL
		if url == "" {
			url = model.DefaultEndpoint
		}

		opts := []api.ClientOption{api.WithMaxRetries(cfg.MaxRetries)}
		if cfg.FetchTimeoutSec > 0 {
			opts = append(opts, api.WithHTTPClient(&http.Client{
				Timeout: time.Duration(cfg.FetchTimeoutSec) * time.Second,
			}))
		}
		token, err := lookupToken(cfg.TokenKey)
		if err != nil {
			log.Warn("token unavailable, fetching without it",
				zap.String("token_key", cfg.TokenKey),
				zap.Error(err),
			)
		}
		if token != "" {
			opts = append(opts, api.WithToken(token))
		}

		log.Info("using api source", zap.String("url", url), zap.Bool("token", token != ""))
		return api.NewAdapter(api.NewClient(url, opts...), log), noop, nil

	case source.SourceTypeFile:
		if cfg.File == "" {
			return nil, nil, errors.New("file source needs source.file (or --file)")
		}
		log.Info("using file source", zap.String("path", cfg.File))
		return file.New(cfg.File, log), noop, nil

	case source.SourceTypeSQLite:
		if cfg.DB == "" {
			return nil, nil, errors.New("sqlite source needs source.db (or --db)")
		}
		s, err := store.NewSQLiteStore(cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("opening snapshot db %s: %w", cfg.DB, err)
		}
		log.Info("using sqlite source", zap.String("path", cfg.DB))
		return store.NewSource(s), s.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown source type %q (want api, file or sqlite)", cfg.Type)
	}
}
