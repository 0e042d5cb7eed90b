package api

import (
	"context"

	"github.com/lealre/courses-backend/internal/metrics"
	"github.com/lealre/courses-backend/internal/services/courses"
)

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type API struct {
	Store   courses.Store
	Pinger  Pinger
	Metrics *metrics.Metrics
}

func NewAPI(store courses.Store, pinger Pinger, m *metrics.Metrics) *API {
	return &API{Store: store, Pinger: pinger, Metrics: m}
}
