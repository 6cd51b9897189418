package api

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/ticketboard/internal/model"
	"github.com/nhle/ticketboard/internal/source"
)

// Adapter implements source.Source over the HTTP snapshot endpoint.
type Adapter struct {
	client *Client
	log    *zap.Logger
	now    func() time.Time
}

// NewAdapter creates a new api source adapter.
func NewAdapter(client *Client, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		client: client,
		log:    log.Named("api"),
		now:    time.Now,
	}
}

// Type returns the source type identifier for the HTTP endpoint.
func (a *Adapter) Type() source.SourceType {
	return source.SourceTypeAPI
}

// Describe returns the endpoint URL.
func (a *Adapter) Describe() string {
	return a.client.URL()
}

// FetchSnapshot fetches and decodes the endpoint's tickets and users.
func (a *Adapter) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	body, requestID, err := a.client.Get(ctx)
	if err != nil {
		return nil, a.fail(err)
	}
	payload, err := source.DecodePayload(body)
	if err != nil {
		return nil, a.fail(fmt.Errorf("GET %s: %w", a.client.URL(), err))
	}

	snap, skipped := payload.ToSnapshot()
	snap.FetchedAt = a.now()

	if skipped > 0 {
		a.log.Warn("skipped records without id",
			zap.String("request_id", requestID),
			zap.Int("skipped", skipped),
		)
	}
	a.log.Debug("snapshot fetched",
		zap.String("request_id", requestID),
		zap.Int("tickets", len(snap.Tickets)),
		zap.Int("users", len(snap.Users)),
	)

	return snap, nil
}

func (a *Adapter) fail(err error) error {
	return &source.FetchError{
		SourceType: source.SourceTypeAPI,
		Location:   a.client.URL(),
		Err:        err,
	}
}
