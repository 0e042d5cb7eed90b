package server

import (
	"github.com/lealre/courses-backend/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func counterValue(m *metrics.Metrics, result string) float64 {
	return testutil.ToFloat64(m.ChapterRatingsTotal.WithLabelValues(result))
}
