// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/driplabs/drip/metrics"
)

var metricHTTPReqs = metrics.LazyLoadHistogramVec(
	"api_request_duration_ms", []string{"name", "code", "method"}, metrics.BucketHTTPReqs,
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLoggerHandler logs each request and observes its duration. The route
// name set at mount time labels the metric.
func RequestLoggerHandler(handler http.Handler, logger *slog.Logger) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()

		handler.ServeHTTP(rec, r)

		name := "unknown"
		if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
			name = route.GetName()
		}
		elapsed := time.Since(started)

		metricHTTPReqs().ObserveWithLabels(elapsed.Milliseconds(), map[string]string{
			"name":   name,
			"code":   http.StatusText(rec.status),
			"method": r.Method,
		})
		logger.Debug("handled request",
			"method", r.Method,
			"uri", r.RequestURI,
			"status", rec.status,
			"elapsed", elapsed,
		)
	}
	return http.HandlerFunc(fn)
}
