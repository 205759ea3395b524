package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/carex-health/carex-api/pkg/metrics"
)

// instrumentedStore decorates another Store with operation counters and
// latency histograms. Not-found is counted separately from failure since it
// is a routing branch, not an error.
type instrumentedStore struct {
	next    Store
	metrics *metrics.Metrics
}

// WithMetrics wraps s so every primitive is measured.
func WithMetrics(s Store, m *metrics.Metrics) Store {
	return &instrumentedStore{next: s, metrics: m}
}

func (s *instrumentedStore) observe(op, collection string, start time.Time, err error) {
	status := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	s.metrics.StoreOperations.WithLabelValues(op, collection, status).Inc()
	s.metrics.StoreLatency.WithLabelValues(op, collection).Observe(time.Since(start).Seconds())
}

func (s *instrumentedStore) Create(ctx context.Context, collection string, id uuid.UUID, doc interface{}) error {
	start := time.Now()
	err := s.next.Create(ctx, collection, id, doc)
	s.observe("create", collection, start, err)
	return err
}

func (s *instrumentedStore) Get(ctx context.Context, collection string, id uuid.UUID, out interface{}) error {
	start := time.Now()
	err := s.next.Get(ctx, collection, id, out)
	s.observe("get", collection, start, err)
	return err
}

func (s *instrumentedStore) Update(ctx context.Context, collection string, id uuid.UUID, fields map[string]interface{}) error {
	start := time.Now()
	err := s.next.Update(ctx, collection, id, fields)
	s.observe("update", collection, start, err)
	return err
}

func (s *instrumentedStore) List(ctx context.Context, collection string, filters []Filter, out interface{}) error {
	start := time.Now()
	err := s.next.List(ctx, collection, filters, out)
	s.observe("list", collection, start, err)
	return err
}

func (s *instrumentedStore) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}
